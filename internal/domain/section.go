package domain

// Section is the top-level menu context a user is currently in.
type Section string

func (s Section) String() string {
	return string(s)
}

const (
	SectionNone         Section = ""
	SectionVideos       Section = "videos"
	SectionInstructions Section = "instructions"
	SectionCatalog      Section = "catalog"
)

var Sections = []Section{
	SectionVideos,
	SectionInstructions,
	SectionCatalog,
}

// TableKind returns the table kind whose data backs the section.
func (s Section) TableKind() (TableKind, bool) {
	switch s {
	case SectionVideos:
		return TableKindVideos, true
	case SectionInstructions:
		return TableKindInstructions, true
	case SectionCatalog:
		return TableKindCatalog, true
	default:
		return "", false
	}
}
