package report

import (
	"fmt"
	"sort"

	"github.com/colorfulnotion/dreamstats/extract"
	"github.com/colorfulnotion/dreamstats/suites"
	"github.com/colorfulnotion/dreamstats/walker"
	"github.com/xlab/treeprint"
)

const unclassified = "unclassified"

// Inventory renders suite -> workload -> configurations found, followed by
// the files that produced no row.
func Inventory(records []*extract.Record, skipped []walker.Skip, order []string) string {
	bySuite := make(map[string]map[string][]string)
	for _, r := range records {
		s, ok := suites.Of(r.Workload)
		if !ok {
			s = unclassified
		}
		if bySuite[s] == nil {
			bySuite[s] = make(map[string][]string)
		}
		bySuite[s][r.Workload] = append(bySuite[s][r.Workload], r.Config)
	}

	tree := treeprint.New()
	tree.SetValue(fmt.Sprintf("%d records", len(records)))
	for _, s := range inventoryOrder(bySuite, order) {
		workloads := bySuite[s]
		branch := tree.AddMetaBranch(len(workloads), suites.DisplayName(s))
		names := make([]string, 0, len(workloads))
		for w := range workloads {
			names = append(names, w)
		}
		sort.Slice(names, func(i, j int) bool { return suites.Less(names[i], names[j]) })
		for _, w := range names {
			cfgs := workloads[w]
			sort.Strings(cfgs)
			wb := branch.AddMetaBranch(len(cfgs), w)
			for _, c := range cfgs {
				wb.AddNode(c)
			}
		}
	}
	if len(skipped) > 0 {
		sb := tree.AddMetaBranch(len(skipped), "skipped")
		for _, s := range skipped {
			if s.Reason != "" {
				sb.AddMetaNode(s.Status, s.Path+": "+s.Reason)
			} else {
				sb.AddMetaNode(s.Status, s.Path)
			}
		}
	}
	return tree.String()
}

func inventoryOrder(bySuite map[string]map[string][]string, order []string) []string {
	var out []string
	seen := make(map[string]bool)
	for _, s := range order {
		if _, ok := bySuite[s]; ok && !seen[s] {
			out = append(out, s)
			seen[s] = true
		}
	}
	var rest []string
	for s := range bySuite {
		if !seen[s] && s != unclassified {
			rest = append(rest, s)
		}
	}
	sort.Strings(rest)
	out = append(out, rest...)
	if _, ok := bySuite[unclassified]; ok {
		out = append(out, unclassified)
	}
	return out
}
