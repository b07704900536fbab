package api

import (
	"html/template"
	"net/url"
	"strconv"
	"strings"

	"github.com/westbourne-advisory/website/intake"
	"github.com/westbourne-advisory/website/models"
	"github.com/westbourne-advisory/website/richtext"
)

// Template data is flattened into plain structs so templates never call
// methods on nil pointers.

type postCard struct {
	Title       string
	Slug        string
	Excerpt     string
	Category    string
	Author      string
	Date        string
	ImageURL    string
	ImageAlt    string
	ReadingTime int
}

func newPostCard(p models.BlogPost, mediaBase string) postCard {
	card := postCard{
		Title:       p.Title,
		Slug:        p.Slug,
		Excerpt:     p.Excerpt,
		Category:    p.Category,
		Author:      p.Author,
		Date:        p.PublishedAt.Long(),
		ReadingTime: richtext.ReadingTime(p.Content),
	}
	if !p.FeaturedImage.IsEmpty() {
		card.ImageURL = p.FeaturedImage.Resolve(mediaBase)
		card.ImageAlt = p.FeaturedImage.AlternativeText
		if card.ImageAlt == "" {
			card.ImageAlt = p.Title
		}
	}
	return card
}

func newPostCards(posts []models.BlogPost, mediaBase string) []postCard {
	cards := make([]postCard, 0, len(posts))
	for _, p := range posts {
		cards = append(cards, newPostCard(p, mediaBase))
	}
	return cards
}

type testimonialView struct {
	Name      string
	Role      string
	Quote     string
	Initials  string
	AvatarURL string
	AvatarAlt string
	Stars     []int
}

func newTestimonialViews(testimonials []models.Testimonial, mediaBase string) []testimonialView {
	views := make([]testimonialView, 0, len(testimonials))
	for _, t := range testimonials {
		v := testimonialView{
			Name:     t.Name,
			Role:     t.Role,
			Quote:    t.Quote,
			Initials: t.Initials(),
			Stars:    t.Stars(),
		}
		if !t.Avatar.IsEmpty() {
			v.AvatarURL = t.Avatar.Resolve(mediaBase)
			v.AvatarAlt = t.Avatar.AlternativeText
			if v.AvatarAlt == "" {
				v.AvatarAlt = t.Name
			}
		}
		views = append(views, v)
	}
	return views
}

type homeView struct {
	InitialVideo   string
	Testimonials   []testimonialView
	FAQs           []models.FAQ
	ContactSent    bool
	ContactInvalid bool
}

type categoryLink struct {
	Name   string
	URL    string
	Active bool
}

type pageLink struct {
	Number  int
	URL     string
	Current bool
}

type blogIndexView struct {
	Category   string
	Search     string
	Categories []categoryLink
	Posts      []postCard
	TotalPages int
	PrevURL    string
	NextURL    string
	PageLinks  []pageLink
	Fallback   bool
}

// blogURL builds a /blog link. Page 1 is left implicit.
func blogURL(page int, category, search string) string {
	q := url.Values{}
	if page > 1 {
		q.Set("page", strconv.Itoa(page))
	}
	if category != "" {
		q.Set("category", category)
	}
	if search != "" {
		q.Set("q", search)
	}
	if len(q) == 0 {
		return "/blog"
	}
	return "/blog?" + q.Encode()
}

// categoryLinks lists "All Categories" followed by each category. Following the
// active category clears it. Every link starts again from page 1.
func categoryLinks(categories []string, active, search string) []categoryLink {
	links := make([]categoryLink, 0, len(categories)+1)
	links = append(links, categoryLink{Name: "All Categories", URL: blogURL(1, "", search), Active: active == ""})
	for _, c := range categories {
		target := c
		if c == active {
			target = ""
		}
		links = append(links, categoryLink{Name: c, URL: blogURL(1, target, search), Active: c == active})
	}
	return links
}

func pageLinks(current, total int, category, search string) []pageLink {
	links := make([]pageLink, 0, total)
	for n := 1; n <= total; n++ {
		links = append(links, pageLink{Number: n, URL: blogURL(n, category, search), Current: n == current})
	}
	return links
}

type blogPostView struct {
	Post    postCard
	Body    template.HTML
	Tags    []string
	Related []postCard
}

// splitTags turns the comma separated tag field into a list.
func splitTags(tags string) []string {
	var out []string
	for _, t := range strings.Split(tags, ",") {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}

type legalView struct {
	ShowHeader  bool
	Title       string
	LastUpdated string
	Body        template.HTML
}

type journeyView struct {
	Submitted  bool
	StepNumber int
	Total      int
	Progress   int
	Step       intake.Step
	Values     map[string]string
	Errors     intake.FieldErrors
}

func newJourneyView(d *intake.Draft, fieldErrs intake.FieldErrors) journeyView {
	step, _ := intake.StepAt(d.Step)
	if fieldErrs == nil {
		fieldErrs = intake.FieldErrors{}
	}
	values := d.Answers
	if values == nil {
		values = map[string]string{}
	}
	return journeyView{
		StepNumber: d.Step,
		Total:      intake.TotalSteps,
		Progress:   d.Progress(),
		Step:       step,
		Values:     values,
		Errors:     fieldErrs,
	}
}
