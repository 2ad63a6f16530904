package entries

// SportSubType is a refinement of a sport type (e.g. "road" under cycling).
// It only exists within its owning SportType.
type SportSubType struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Equipment is a piece of gear tracked per sport type (e.g. a specific pair
// of running shoes). NotInUse hides retired equipment from new entries
// without breaking old ones that still reference it.
type Equipment struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	NotInUse bool   `json:"not_in_use"`
}

// SportType is a top-level exercise category. It owns its subtype and
// equipment collections; subtype and equipment IDs are only meaningful
// within their sport type.
type SportType struct {
	ID        int64          `json:"id"`
	Name      string         `json:"name"`
	SubTypes  []*SportSubType `json:"subtypes"`
	Equipment []*Equipment    `json:"equipment"`
}

// SubTypeByID returns the subtype with the given ID, or nil.
func (s *SportType) SubTypeByID(id int64) *SportSubType {
	for _, st := range s.SubTypes {
		if st.ID == id {
			return st
		}
	}
	return nil
}

// EquipmentByID returns the equipment with the given ID, or nil.
func (s *SportType) EquipmentByID(id int64) *Equipment {
	for _, eq := range s.Equipment {
		if eq.ID == id {
			return eq
		}
	}
	return nil
}

// SportTypeList is the full reference table of sport types, in display
// order. It is passed around as a plain value; there is no global registry.
type SportTypeList []*SportType

// ByID returns the sport type with the given ID, or nil.
func (l SportTypeList) ByID(id int64) *SportType {
	for _, s := range l {
		if s.ID == id {
			return s
		}
	}
	return nil
}
