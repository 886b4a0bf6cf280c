package extract

// Cleaner turns a raw localization value into readable text.
// Implementations should be deterministic and idempotent.
type Cleaner interface {
    // Clean returns the cleaned text, ErrMalformed when the value cannot be
    // cleaned, or ErrFragment when too little text remains.
    Clean(raw string) (string, error)
}

var _ Cleaner = Pipeline(nil)
