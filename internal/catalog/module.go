package catalog

import "slices"

// PageKind identifies how a content page body is rendered.
type PageKind string

const (
	PageText  PageKind = "text"
	PageImage PageKind = "image"
	PageVideo PageKind = "video"
)

// AllPageKinds returns every supported page kind.
func AllPageKinds() []PageKind {
	return []PageKind{PageText, PageImage, PageVideo}
}

// Valid reports whether k is a known page kind.
func (k PageKind) Valid() bool {
	return slices.Contains(AllPageKinds(), k)
}

// Hazard groups modules by the kind of disaster they prepare for.
type Hazard string

const (
	HazardFlood     Hazard = "flood"
	HazardLandslide Hazard = "landslide"
	HazardHeat      Hazard = "heat"
	HazardStorm     Hazard = "storm"
	HazardGeneral   Hazard = "general"
)

// AllHazards returns every supported hazard.
func AllHazards() []Hazard {
	return []Hazard{HazardFlood, HazardLandslide, HazardHeat, HazardStorm, HazardGeneral}
}

// Valid reports whether h is a known hazard.
func (h Hazard) Valid() bool {
	return slices.Contains(AllHazards(), h)
}

// DisplayName returns a human-readable label for the hazard.
func (h Hazard) DisplayName() string {
	switch h {
	case HazardFlood:
		return "Floods"
	case HazardLandslide:
		return "Landslides"
	case HazardHeat:
		return "Heat Waves"
	case HazardStorm:
		return "Storms"
	case HazardGeneral:
		return "General"
	default:
		return string(h)
	}
}

// ContentPage is a single page of learning material.
type ContentPage struct {
	Title string
	Body  string // text, or an image/video reference
	Kind  PageKind
	Hint  string // alt text for image and video pages
}

// QuizQuestion is one question of a module's final quiz.
type QuizQuestion struct {
	ID            string
	Prompt        string
	Options       []string
	CorrectAnswer string
	Explanation   string
}

// HasOption reports whether option is one of the question's declared options.
func (q QuizQuestion) HasOption(option string) bool {
	return slices.Contains(q.Options, option)
}

// Module is a self-contained learning unit: content pages, a final quiz and a reward.
type Module struct {
	ID            string
	Title         string
	Description   string
	Hazard        Hazard
	EstimatedTime string
	Pages         []ContentPage
	Quiz          []QuizQuestion
	Reward        string
}

// PageCount returns the number of content pages. A session whose page index
// equals PageCount is showing the quiz.
func (m Module) PageCount() int {
	return len(m.Pages)
}

// Question returns the quiz question with the given ID.
func (m Module) Question(id string) (QuizQuestion, bool) {
	for _, q := range m.Quiz {
		if q.ID == id {
			return q, true
		}
	}
	return QuizQuestion{}, false
}

// clone returns a deep copy so callers can't mutate catalog data.
func (m Module) clone() Module {
	c := m
	c.Pages = slices.Clone(m.Pages)
	c.Quiz = make([]QuizQuestion, len(m.Quiz))
	for i, q := range m.Quiz {
		q.Options = slices.Clone(q.Options)
		c.Quiz[i] = q
	}
	return c
}
