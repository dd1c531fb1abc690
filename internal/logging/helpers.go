package logging

import "time"

// Per-category convenience functions. Info level unless suffixed Debug.

func Ingest(format string, args ...interface{}) { Get(CategoryIngest).Info(format, args...) }

func IngestDebug(format string, args ...interface{}) { Get(CategoryIngest).Debug(format, args...) }

func Schema(format string, args ...interface{}) { Get(CategorySchema).Info(format, args...) }

func SchemaDebug(format string, args ...interface{}) { Get(CategorySchema).Debug(format, args...) }

func Mining(format string, args ...interface{}) { Get(CategoryMining).Info(format, args...) }

func MiningDebug(format string, args ...interface{}) { Get(CategoryMining).Debug(format, args...) }

func Store(format string, args ...interface{}) { Get(CategoryStore).Info(format, args...) }

func StoreDebug(format string, args ...interface{}) { Get(CategoryStore).Debug(format, args...) }

func Embedding(format string, args ...interface{}) { Get(CategoryEmbedding).Info(format, args...) }

func EmbeddingDebug(format string, args ...interface{}) {
	Get(CategoryEmbedding).Debug(format, args...)
}

func LLM(format string, args ...interface{}) { Get(CategoryLLM).Info(format, args...) }

func LLMDebug(format string, args ...interface{}) { Get(CategoryLLM).Debug(format, args...) }

func Answer(format string, args ...interface{}) { Get(CategoryAnswer).Info(format, args...) }

func AnswerDebug(format string, args ...interface{}) { Get(CategoryAnswer).Debug(format, args...) }

// Timer measures the duration of an operation and logs it on Stop.
type Timer struct {
	category Category
	op       string
	start    time.Time
}

// StartTimer begins timing an operation in the given category.
func StartTimer(category Category, op string) *Timer {
	return &Timer{category: category, op: op, start: time.Now()}
}

// Stop logs the elapsed time at debug level.
func (t *Timer) Stop() {
	Get(t.category).Debug("%s completed in %v", t.op, time.Since(t.start))
}
