// Command csvq is a minimal front-end over the engine: a flag-based
// "simple mode" query surface, not a SQL parser. Building a real
// parser onto the query.Query tree is out of this module's scope; this
// exists only so the engine has a runnable entry point.
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/csvengine/csvq/config"
	"github.com/csvengine/csvq/engine"
	"github.com/csvengine/csvq/query"
)

func main() {
	var (
		configPath = flag.String("config", os.Getenv("CSVQ_CONFIG"), "path to an optional YAML tuning override file")
		selectFlag = flag.String("select", "", "comma-separated column names to emit; empty means all columns")
		whereFlag  = flag.String("where", "", "a single comparison: column<op>value, op one of = != < <= > >=")
		orderFlag  = flag.String("orderby", "", "column[:asc|desc] to sort by")
		limitFlag  = flag.Int("limit", 0, "maximum number of rows to emit; 0 means unbounded")
		groupFlag  = flag.String("groupby", "", "column to group by (always returns an error: not implemented)")
	)
	flag.Parse()

	source := "-"
	if flag.NArg() > 0 {
		source = flag.Arg(0)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fatal(err)
	}
	resolved := config.Resolve(cfg)

	q, err := buildQuery(source, *selectFlag, *whereFlag, *orderFlag, *groupFlag, *limitFlag)
	if err != nil {
		fatal(err)
	}

	if err := engine.Execute(q, resolved, os.Stdout); err != nil {
		fatal(err)
	}
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, "csvq:", err)
	os.Exit(1)
}

func buildQuery(source, selectCols, where, orderBy, groupBy string, limit int) (*query.Query, error) {
	q := &query.Query{Source: source, Limit: limit}

	if selectCols == "" {
		q.Projection = query.Projection{All: true}
	} else {
		q.Projection = query.Projection{Names: splitTrim(selectCols)}
	}

	if where != "" {
		p, err := parseWhere(where)
		if err != nil {
			return nil, err
		}
		q.Predicate = p
	}

	if orderBy != "" {
		name, dir := orderBy, "asc"
		if i := strings.LastIndex(orderBy, ":"); i >= 0 {
			name, dir = orderBy[:i], orderBy[i+1:]
		}
		direction := query.Ascending
		switch strings.ToLower(dir) {
		case "asc":
			direction = query.Ascending
		case "desc":
			direction = query.Descending
		default:
			return nil, fmt.Errorf("csvq: -orderby: unknown direction %q", dir)
		}
		q.Sort = &query.SortSpec{Column: -1, ColumnName: name, Direction: direction}
	}

	if groupBy != "" {
		q.GroupBy = &query.GroupBySpec{Column: -1, ColumnName: groupBy}
	}

	return q, nil
}

// whereOps lists the comparison operators parseWhere recognizes, in
// longest-first order so "<=" matches before "<".
var whereOps = []struct {
	text string
	op   query.Op
}{
	{"!=", query.Ne},
	{">=", query.Ge},
	{"<=", query.Le},
	{"=", query.Eq},
	{"<", query.Lt},
	{">", query.Gt},
}

func parseWhere(expr string) (*query.Predicate, error) {
	for _, o := range whereOps {
		if i := strings.Index(expr, o.text); i >= 0 {
			name := strings.TrimSpace(expr[:i])
			literal := strings.TrimSpace(expr[i+len(o.text):])
			p := &query.Predicate{
				Column:     -1,
				ColumnName: name,
				Operator:   o.op,
				Literal:    []byte(literal),
			}
			if v, err := strconv.ParseFloat(literal, 64); err == nil {
				p.HasNumeric = true
				p.Numeric = v
			}
			return p, nil
		}
	}
	return nil, fmt.Errorf("csvq: -where: no recognized operator in %q", expr)
}

func splitTrim(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, len(parts))
	for i, p := range parts {
		out[i] = strings.TrimSpace(p)
	}
	return out
}
