package cosmic

// QueryFilter maps a dotted field path such as "metadata.regular_hosts.id"
// to either a scalar (equality) or an Operator. Filters are sent to the
// service as-is; nothing is validated locally.
type QueryFilter map[string]any

// Operator is a MongoDB-style comparison, for example {"$in": [...]}.
type Operator map[string]any

// Eq is plain equality. It exists for symmetry; a bare scalar works too.
func Eq(value any) any { return value }

// In matches any of values.
func In(values ...any) Operator { return Operator{"$in": values} }

// Nin matches none of values.
func Nin(values ...any) Operator { return Operator{"$nin": values} }

// Gt is a strict lower bound.
func Gt(value any) Operator { return Operator{"$gt": value} }

// Gte is an inclusive lower bound.
func Gte(value any) Operator { return Operator{"$gte": value} }

// Lt is a strict upper bound.
func Lt(value any) Operator { return Operator{"$lt": value} }

// Lte is an inclusive upper bound.
func Lte(value any) Operator { return Operator{"$lte": value} }

// Ne is inequality.
func Ne(value any) Operator { return Operator{"$ne": value} }

// Exists tests for field presence.
func Exists(present bool) Operator { return Operator{"$exists": present} }

// Regex matches a regular expression, with optional flags such as "i".
func Regex(pattern, options string) Operator {
	op := Operator{"$regex": pattern}
	if options != "" {
		op["$options"] = options
	}

	return op
}

// And merges the keys of others into a copy of o, so Gte(a).And(Lte(b))
// expresses a range. Later keys win.
func (o Operator) And(others ...Operator) Operator {
	merged := make(Operator, len(o))
	for key, value := range o {
		merged[key] = value
	}

	for _, other := range others {
		for key, value := range other {
			merged[key] = value
		}
	}

	return merged
}

// With returns a copy of f with path set to condition.
func (f QueryFilter) With(path string, condition any) QueryFilter {
	merged := make(QueryFilter, len(f)+1)
	for key, value := range f {
		merged[key] = value
	}

	merged[path] = condition

	return merged
}

// FindOptions are the optional parameters of find and findOne. Nil and blank
// fields are not sent, leaving the server default in place.
type FindOptions struct {
	Query  QueryFilter
	Props  string
	Limit  *int
	Skip   *int
	Depth  *int
	Sort   Sort
	Status Status
}

// NewFindOptions returns empty options.
func NewFindOptions() *FindOptions {
	return &FindOptions{}
}

// WithQuery sets the filter.
func (o *FindOptions) WithQuery(query QueryFilter) *FindOptions {
	o.Query = query

	return o
}

// WithFilter adds one condition to the filter.
func (o *FindOptions) WithFilter(path string, condition any) *FindOptions {
	o.Query = o.Query.With(path, condition)

	return o
}

// WithProps sets the response projection, e.g. "id,title,metadata".
func (o *FindOptions) WithProps(props string) *FindOptions {
	o.Props = props

	return o
}

// WithLimit caps the number of results.
func (o *FindOptions) WithLimit(limit int) *FindOptions {
	o.Limit = &limit

	return o
}

// WithSkip skips the first results.
func (o *FindOptions) WithSkip(skip int) *FindOptions {
	o.Skip = &skip

	return o
}

// WithDepth sets the relationship expansion depth.
func (o *FindOptions) WithDepth(depth int) *FindOptions {
	o.Depth = &depth

	return o
}

// WithSort sets the ordering.
func (o *FindOptions) WithSort(sort Sort) *FindOptions {
	o.Sort = sort

	return o
}

// WithStatus filters by publication status.
func (o *FindOptions) WithStatus(status Status) *FindOptions {
	o.Status = status

	return o
}

// ListOptions are the optional parameters of media listing.
type ListOptions struct {
	Props string
	Limit *int
	Skip  *int
}

// NewListOptions returns empty options.
func NewListOptions() *ListOptions {
	return &ListOptions{}
}

// WithProps sets the response projection.
func (o *ListOptions) WithProps(props string) *ListOptions {
	o.Props = props

	return o
}

// WithLimit caps the number of results.
func (o *ListOptions) WithLimit(limit int) *ListOptions {
	o.Limit = &limit

	return o
}

// WithSkip skips the first results.
func (o *ListOptions) WithSkip(skip int) *ListOptions {
	o.Skip = &skip

	return o
}
