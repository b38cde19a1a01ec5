package merge

import (
	"github.com/wippyai/doccorpus/javadoc"
	"github.com/wippyai/doccorpus/meta"
)

// ComputeBriefs selects the brief block of every comment reachable from
// info: its own, its members' and those of owned enums and typedefs.
// It is idempotent.
func ComputeBriefs(info meta.Info) {
	if info == nil {
		return
	}
	brief(info.Common().Doc)
	switch v := info.(type) {
	case *meta.Namespace:
		scopeBriefs(&v.Children)
	case *meta.Record:
		for i := range v.Members {
			brief(v.Members[i].Doc)
		}
		for i := range v.Bases {
			for j := range v.Bases[i].Members {
				brief(v.Bases[i].Members[j].Doc)
			}
		}
		scopeBriefs(&v.Children)
	}
}

func scopeBriefs(s *meta.Scope) {
	for _, e := range s.Enums {
		ComputeBriefs(e)
	}
	for _, t := range s.Typedefs {
		ComputeBriefs(t)
	}
}

func brief(d *javadoc.Javadoc) {
	if d != nil {
		d.CalculateBrief()
	}
}
