package models

// ServiceType is a single bookable maintenance service.
type ServiceType struct {
	ID               string `bson:"id" json:"id"`
	Name             string `bson:"name" json:"name"`
	Description      string `bson:"description" json:"description"`
	BasePrice        int64  `bson:"basePrice" json:"basePrice"` // VND
	EstimatedMinutes int    `bson:"estimatedMinutes" json:"estimatedMinutes"`
	Category         string `bson:"category" json:"category"`
}

// ServicePackage bundles several service types at a package price.
type ServicePackage struct {
	ID             string   `bson:"id" json:"id"`
	Name           string   `bson:"name" json:"name"`
	Description    string   `bson:"description" json:"description"`
	Price          int64    `bson:"price" json:"price"` // VND
	ServiceTypeIDs []string `bson:"serviceTypeIds" json:"serviceTypeIds"`
}

// SelectionKind discriminates the service-selection variant.
type SelectionKind string

const (
	SelectionServiceType    SelectionKind = "service_type"
	SelectionServicePackage SelectionKind = "service_package"
	SelectionInspectionOnly SelectionKind = "inspection_only"
)

// ServiceSelection is a tagged variant: exactly one of a service type, a
// service package, or an inspection-only visit. ID is empty only for the
// inspection-only kind.
type ServiceSelection struct {
	Kind SelectionKind `bson:"kind" json:"kind"`
	ID   string        `bson:"id,omitempty" json:"id,omitempty"`
}

// IsSet reports whether a valid selection has been made.
func (s ServiceSelection) IsSet() bool {
	switch s.Kind {
	case SelectionServiceType, SelectionServicePackage:
		return s.ID != ""
	case SelectionInspectionOnly:
		return true
	}
	return false
}
