package engine

import (
	"fmt"

	"github.com/csvengine/csvq/header"
	"github.com/csvengine/csvq/query"
)

// resolve fills in every Column field still identified only by name
// (Column == -1, *Name set) against hdr, returning a new Query so the
// caller's original is never mutated. A name with no match in hdr is
// a column_not_found error.
func resolve(q *query.Query, hdr *header.Header) (*query.Query, error) {
	out := *q

	proj, err := resolveProjection(q.Projection, hdr)
	if err != nil {
		return nil, err
	}
	out.Projection = proj

	if q.Predicate != nil {
		p, err := resolvePredicate(q.Predicate, hdr)
		if err != nil {
			return nil, err
		}
		out.Predicate = p
	}

	if q.Sort != nil {
		s, err := resolveSort(*q.Sort, hdr)
		if err != nil {
			return nil, err
		}
		out.Sort = &s
	}

	if q.GroupBy != nil {
		g, err := resolveGroupBy(*q.GroupBy, hdr)
		if err != nil {
			return nil, err
		}
		out.GroupBy = &g
	}

	return &out, nil
}

func resolveColumn(column int, name string, hdr *header.Header) (int, error) {
	if column >= 0 || name == "" {
		return column, nil
	}
	pos, ok := hdr.Lookup(name)
	if !ok {
		return -1, newError(KindColumnNotFound, fmt.Errorf("column %q not found in header", name))
	}
	return pos, nil
}

func resolveProjection(p query.Projection, hdr *header.Header) (query.Projection, error) {
	if p.All || p.Columns != nil || len(p.Names) == 0 {
		return p, nil
	}
	cols := make([]int, len(p.Names))
	for i, name := range p.Names {
		pos, ok := hdr.Lookup(name)
		if !ok {
			return p, newError(KindColumnNotFound, fmt.Errorf("column %q not found in header", name))
		}
		cols[i] = pos
	}
	return query.Projection{Columns: cols}, nil
}

func resolvePredicate(p *query.Predicate, hdr *header.Header) (*query.Predicate, error) {
	out := *p
	if p.Tree != nil {
		children := make([]*query.Predicate, len(p.Tree.Children))
		for i, c := range p.Tree.Children {
			rc, err := resolvePredicate(c, hdr)
			if err != nil {
				return nil, err
			}
			children[i] = rc
		}
		tree := *p.Tree
		tree.Children = children
		out.Tree = &tree
		return &out, nil
	}
	col, err := resolveColumn(p.Column, p.ColumnName, hdr)
	if err != nil {
		return nil, err
	}
	out.Column = col
	return &out, nil
}

func resolveSort(s query.SortSpec, hdr *header.Header) (query.SortSpec, error) {
	col, err := resolveColumn(s.Column, s.ColumnName, hdr)
	if err != nil {
		return s, err
	}
	s.Column = col
	return s, nil
}

func resolveGroupBy(g query.GroupBySpec, hdr *header.Header) (query.GroupBySpec, error) {
	col, err := resolveColumn(g.Column, g.ColumnName, hdr)
	if err != nil {
		return g, err
	}
	g.Column = col
	return g, nil
}
