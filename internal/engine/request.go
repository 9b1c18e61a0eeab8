package engine

// Request carries the caller-supplied scan parameters. Every field has a
// default; Normalize fills in whatever the caller left zero.
type Request struct {
	Directories     []string `json:"directories"`
	FileTypes       []string `json:"file_types"`
	MaxLines        int      `json:"max_lines"`
	TopN            int      `json:"top_n"`
	ExcludeComments bool     `json:"exclude_comments"`
	IncludeMetrics  bool     `json:"include_metrics"`
}

// Default request parameter values.
const (
	DefaultMaxLines = 140
	DefaultTopN     = 20
)

// DefaultFileTypes are the extensions scanned when the caller names none.
var DefaultFileTypes = []string{".py", ".ts", ".tsx", ".js", ".jsx"}

// DefaultRequest returns a Request with every field at its default.
func DefaultRequest() Request {
	return Request{
		Directories:     []string{"."},
		FileTypes:       append([]string(nil), DefaultFileTypes...),
		MaxLines:        DefaultMaxLines,
		TopN:            DefaultTopN,
		ExcludeComments: true,
		IncludeMetrics:  true,
	}
}

// Normalize fills zero-valued slice fields with their defaults. Numeric
// fields keep their values; zero is meaningful for TopN (unlimited is
// expressed as a non-positive value downstream).
func (r *Request) Normalize() {
	if len(r.Directories) == 0 {
		r.Directories = []string{"."}
	}
	if len(r.FileTypes) == 0 {
		r.FileTypes = append([]string(nil), DefaultFileTypes...)
	}
}
