package format

// Definition is the full definition of a user-defined type, as held by a
// registry. Struct and enum type nodes only carry the ID.
type Definition interface {
	DefinitionID() string
	isDefinition()
}

type StructDefinition struct {
	ID               string `validate:"required"`
	TypeName         string `validate:"required"`
	DefiningContract string
	Members          []NameTypePair `validate:"dive"`
}

type EnumDefinition struct {
	ID               string `validate:"required"`
	TypeName         string `validate:"required"`
	DefiningContract string
	Options          []string `validate:"min=1,dive,required"`
}

func (d *StructDefinition) DefinitionID() string { return d.ID }
func (d *EnumDefinition) DefinitionID() string   { return d.ID }

func (*StructDefinition) isDefinition() {}
func (*EnumDefinition) isDefinition()   {}

// Stub returns the reference type pointing at d.
func (d *StructDefinition) Stub(location Location) *StructType {
	return &StructType{ID: d.ID, TypeName: d.TypeName, DefiningContract: d.DefiningContract, Location: location}
}

// Stub returns the reference type pointing at d.
func (d *EnumDefinition) Stub() *EnumType {
	return &EnumType{ID: d.ID, TypeName: d.TypeName, DefiningContract: d.DefiningContract}
}
