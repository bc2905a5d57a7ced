package domain

import "time"

type Gender string

const (
	GenderMale   Gender = "m"
	GenderFemale Gender = "f"
)

// Preference is who a participant is looking for: a specific gender or anyone.
type Preference string

const (
	PreferenceMale   Preference = "m"
	PreferenceFemale Preference = "f"
	PreferenceAny    Preference = "mf"
)

// Matches reports whether the preference includes the given gender.
func (p Preference) Matches(g Gender) bool {
	return p == PreferenceAny || string(p) == string(g)
}

type Profile struct {
	UserID     string     `json:"user_id" db:"user_id"`
	UserName   string     `json:"user_name" db:"user_name"`
	Phone      *string    `json:"phone" db:"phone"`
	Gender     Gender     `json:"gender" db:"gender"`
	LookingFor Preference `json:"looking_for" db:"looking_for"`
	CourseCode string     `json:"course_code" db:"course_code"`
	StudyYear  string     `json:"study_year" db:"study_year"`

	Romantic     int `json:"romantic" db:"romantic"`
	Adventurous  int `json:"adventurous" db:"adventurous"`
	Intellectual int `json:"intellectual" db:"intellectual"`
	Creative     int `json:"creative" db:"creative"`
	Chill        int `json:"chill" db:"chill"`
	Social       int `json:"social" db:"social"`
	Ambitious    int `json:"ambitious" db:"ambitious"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// Scores returns the profile's category scores in Categories order.
func (p *Profile) Scores() ScoreVector {
	return ScoreVector{p.Romantic, p.Adventurous, p.Intellectual, p.Creative, p.Chill, p.Social, p.Ambitious}
}

// SetScores writes a score vector back onto the named columns.
func (p *Profile) SetScores(v ScoreVector) {
	p.Romantic = v[0]
	p.Adventurous = v[1]
	p.Intellectual = v[2]
	p.Creative = v[3]
	p.Chill = v[4]
	p.Social = v[5]
	p.Ambitious = v[6]
}

// MutuallyInterested reports whether both participants fall inside each
// other's gender preference. This is the eligibility filter applied before
// any ranking happens.
func MutuallyInterested(a, b *Profile) bool {
	return a.LookingFor.Matches(b.Gender) && b.LookingFor.Matches(a.Gender)
}

// ContactHandle returns the participant's contact handle, empty if unset.
func (p *Profile) ContactHandle() string {
	if p.Phone == nil {
		return ""
	}
	return *p.Phone
}
