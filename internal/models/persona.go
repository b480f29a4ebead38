package models

// Education values accepted on a target group. The empty string means unset.
const (
	EducationEducated   = "eğitimli"
	EducationUneducated = "eğitimsiz"
	EducationIrrelevant = "bu hizmet için önemli kriter değil"
)

// Persona is the narrative profile attached to a target group.
type Persona struct {
	Name        string `json:"name" yaml:"name"`
	Bio         string `json:"bio" yaml:"bio"`
	Profession  string `json:"profession" yaml:"profession"`
	HasChildren string `json:"hasChildren" yaml:"hasChildren"`
	Residence   string `json:"residence" yaml:"residence"`
	Likes       string `json:"likes" yaml:"likes"`
	PainPoints  string `json:"painPoints" yaml:"painPoints"`
	Motivations string `json:"motivations" yaml:"motivations"`
}

type TargetGroup struct {
	ID        int      `json:"id" yaml:"id"`
	AgeRange  string   `json:"ageRange" yaml:"ageRange"`
	Location  string   `json:"location" yaml:"location"`
	Education string   `json:"education" yaml:"education"`
	Interests []string `json:"interests" yaml:"interests"`
	Persona   Persona  `json:"persona" yaml:"persona"`
}

type Service struct {
	ID           int           `json:"id" yaml:"id"`
	Name         string        `json:"name" yaml:"name"`
	TargetGroups []TargetGroup `json:"targetGroups" yaml:"targetGroups"`
}

// ValidEducation reports whether v is one of the accepted education values.
func ValidEducation(v string) bool {
	switch v {
	case "", EducationEducated, EducationUneducated, EducationIrrelevant:
		return true
	}
	return false
}
