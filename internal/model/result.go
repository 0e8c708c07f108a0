package model

// CompleteIntent is a fully actionable bookkeeping request. Amount is
// always strictly positive; construction paths must enforce that.
type CompleteIntent struct {
	DateTime     *TimeRange
	Type         TransactionType
	Category     string
	Merchant     string
	Description  string
	OriginalText string
	Amount       float64
	Confidence   float64
}

// IncompleteIntent is a recognized transaction request that cannot be
// executed yet. MissingSlots names the absent fields in a stable order and
// is never empty.
type IncompleteIntent struct {
	DateTime     *TimeRange
	Type         TransactionType
	Category     string
	Merchant     string
	Description  string
	OriginalText string
	MissingSlots []string
	Confidence   float64
}

// NavigationIntent asks the UI to open a specific page. At most one
// survives per utterance; the first detected wins.
type NavigationIntent struct {
	TargetPage   string
	TargetName   string
	OriginalText string
}

// MultiIntentResult is the aggregate outcome of analyzing one utterance.
// It is built exactly once per analysis and immutable afterwards.
type MultiIntentResult struct {
	Navigation        *NavigationIntent
	RawInput          string
	CompleteIntents   []CompleteIntent
	IncompleteIntents []IncompleteIntent
	FilteredNoise     []string
	Segments          []string
}

// Empty reports whether the result carries no actionable intent at all.
func (r MultiIntentResult) Empty() bool {
	return len(r.CompleteIntents) == 0 && len(r.IncompleteIntents) == 0 && r.Navigation == nil
}
