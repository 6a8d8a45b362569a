package query

// HighSentinel is appended to a prefix to build the exclusive upper bound of
// a prefix range: every string starting with p sorts inside [p, p+HighSentinel).
const HighSentinel = "\uf8ff"

type Operator int

const (
	Equal Operator = iota
	GreaterOrEqual
	LessThan
)

func (o Operator) String() string {
	switch o {
	case Equal:
		return "=="
	case GreaterOrEqual:
		return ">="
	case LessThan:
		return "<"
	default:
		return "?"
	}
}

type Direction int

const (
	Ascending Direction = iota
	Descending
)

// Filter compares an in-memory field name against Value.
type Filter struct {
	Field string
	Op    Operator
	Value any
}

type Order struct {
	Field     string
	Direction Direction
}

// Spec is a read against the wallpaper collection. Filters are ANDed.
// A zero Limit means no limit.
type Spec struct {
	Filters []Filter
	Order   *Order
	Limit   int64
}

func New() Spec {
	return Spec{}
}

func (s Spec) Where(field string, op Operator, value any) Spec {
	filters := make([]Filter, len(s.Filters), len(s.Filters)+1)
	copy(filters, s.Filters)
	s.Filters = append(filters, Filter{Field: field, Op: op, Value: value})

	return s
}

func (s Spec) OrderBy(field string, dir Direction) Spec {
	s.Order = &Order{Field: field, Direction: dir}

	return s
}

func (s Spec) Take(n int64) Spec {
	s.Limit = n

	return s
}

// Prefix restricts field to values starting with prefix.
func (s Spec) Prefix(field, prefix string) Spec {
	return s.Where(field, GreaterOrEqual, prefix).Where(field, LessThan, prefix+HighSentinel)
}
