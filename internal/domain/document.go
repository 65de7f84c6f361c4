package domain

// FetchResult is the reader stage output handed to the evaluator stage.
// Error presence is authoritative: when Error is set, DocumentText must be ignored.
type FetchResult struct {
	DocumentText   *string   `json:"document_text"`
	DomainKeywords string    `json:"domain_keywords"`
	Error          *string   `json:"error"`
	ErrorKind      ErrorKind `json:"error_kind,omitempty"`
}

// FetchSucceeded builds a result carrying the raw document body.
func FetchSucceeded(text, keywords string) FetchResult {
	return FetchResult{DocumentText: &text, DomainKeywords: keywords}
}

// FetchFailed builds a result carrying a typed failure and no text.
func FetchFailed(kind ErrorKind, message, keywords string) FetchResult {
	return FetchResult{DomainKeywords: keywords, Error: &message, ErrorKind: kind}
}

// Failed reports whether the fetch produced an error.
func (r FetchResult) Failed() bool {
	return r.Error != nil
}

// Text returns the document text, or nil when the fetch failed.
func (r FetchResult) Text() *string {
	if r.Failed() {
		return nil
	}
	return r.DocumentText
}

// Err exposes the failure as a typed error, nil on success.
func (r FetchResult) Err() error {
	if !r.Failed() {
		return nil
	}
	return &Error{Kind: r.ErrorKind, Message: *r.Error}
}

// Preview is best-effort page metadata pulled from HTML documents.
type Preview struct {
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
}

// Empty reports whether nothing could be extracted.
func (p Preview) Empty() bool {
	return p.Title == "" && p.Description == ""
}
