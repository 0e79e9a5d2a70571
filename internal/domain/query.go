package domain

// Field is a column usable as a single-row lookup key.
type Field string

const (
	FieldID   Field = "id"
	FieldSlug Field = "slug"
)

func (f Field) Valid() bool {
	return f == FieldID || f == FieldSlug
}

// Order describes the sort applied to a listing.
type Order struct {
	Column    string
	Ascending bool
}

// NewestFirst is the ordering used by every public listing.
var NewestFirst = Order{Column: "created_at", Ascending: false}

var orderColumns = map[string]bool{
	"id":         true,
	"title":      true,
	"created_at": true,
}

func (o Order) Valid() bool {
	return orderColumns[o.Column]
}

func (o Order) Direction() string {
	if o.Ascending {
		return "ASC"
	}
	return "DESC"
}
