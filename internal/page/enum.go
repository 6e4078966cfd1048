package page

type Kind string

const (
	KindSection Kind = "section"
	KindModule  Kind = "module"
	KindSEO     Kind = "seo"
)

var AllKinds = []Kind{
	KindSection,
	KindModule,
	KindSEO,
}

func (k Kind) IsValid() bool {
	for _, v := range AllKinds {
		if k == v {
			return true
		}
	}
	return false
}
