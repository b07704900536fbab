package cms

import (
	"embed"
	"html/template"

	"github.com/westbourne-advisory/website/models"
)

// Sample content shown when the CMS cannot be reached.

//go:embed fallback/*.html
var fallbackFS embed.FS

const fallbackLastUpdated = "January 2025"

func FallbackBlogPosts() []models.BlogPost {
	return []models.BlogPost{
		{
			ID:          1,
			Title:       "Understanding Parental Orders in UK Surrogacy",
			Slug:        "understanding-parental-orders",
			Excerpt:     "A comprehensive guide to parental orders and their importance in the surrogacy process.",
			Content:     models.TextContent("Full content here..."),
			Author:      "Westbourne Advisory",
			Category:    "Legal Process",
			Status:      statusPublished,
			PublishedAt: models.MustDate("2024-01-15"),
			CreatedAt:   models.MustDate("2024-01-15"),
			UpdatedAt:   models.MustDate("2024-01-15"),
		},
		{
			ID:          2,
			Title:       "The Legal Timeline of Surrogacy in the UK",
			Slug:        "legal-timeline-surrogacy",
			Excerpt:     "What to expect at each stage of your surrogacy legal journey.",
			Content:     models.TextContent("Full content here..."),
			Author:      "Westbourne Advisory",
			Category:    "Timing",
			Status:      statusPublished,
			PublishedAt: models.MustDate("2024-01-10"),
			CreatedAt:   models.MustDate("2024-01-10"),
			UpdatedAt:   models.MustDate("2024-01-10"),
		},
	}
}

func FallbackCategories() []string {
	return []string{"Legal Process", "Timing", "Requirements"}
}

func FallbackTestimonials() []models.Testimonial {
	return []models.Testimonial{
		{
			ID:        1,
			Name:      "Sarah & James",
			Role:      "Intended Parents, London",
			Location:  "London",
			Quote:     "Westbourne Advisory made the complex legal process feel manageable and stress-free. Their expertise and compassionate support were invaluable throughout our entire surrogacy journey. We couldn't have done it without them.",
			Rating:    5,
			Featured:  true,
			CreatedAt: models.MustDate("2024-01-01"),
		},
		{
			ID:        2,
			Name:      "Michael & Lisa",
			Role:      "Intended Parents, Birmingham",
			Location:  "Birmingham",
			Quote:     "The professionalism and attention to detail provided by Westbourne Advisory gave us complete confidence throughout the process. They truly understand the unique needs of intended parents.",
			Rating:    5,
			Featured:  true,
			CreatedAt: models.MustDate("2024-01-01"),
		},
	}
}

func FallbackFAQs() []models.FAQ {
	return []models.FAQ{
		{
			ID:       1,
			Question: "What is the legal process for surrogacy in the UK?",
			Answer:   "The legal process for surrogacy in the UK involves several key steps: establishing a surrogacy agreement, obtaining parental orders, and ensuring all parties' rights are protected. We guide you through each step to ensure compliance with UK law.",
			Category: "Legal Process",
			Order:    1,
		},
		{
			ID:       2,
			Question: "When should we start the legal process?",
			Answer:   "It's best to start the legal process early, ideally before conception. This allows time to properly establish agreements, understand your rights, and ensure all legal requirements are met before the baby is born.",
			Category: "Timing",
			Order:    2,
		},
		{
			ID:       3,
			Question: "What are parental orders and why are they important?",
			Answer:   "Parental orders transfer legal parenthood from the surrogate to the intended parents. They're crucial because without them, the surrogate remains the legal parent, which can cause significant issues with decision-making and inheritance rights.",
			Category: "Legal Requirements",
			Order:    3,
		},
		{
			ID:       4,
			Question: "How long does the legal process typically take?",
			Answer:   "The legal process typically takes 6-12 months from start to finish, depending on the complexity of your situation. We work efficiently to ensure your journey progresses smoothly while maintaining thorough legal compliance.",
			Category: "Timing",
			Order:    4,
		},
	}
}

// LegalFallback is a complete legal page body, heading and date included.
type LegalFallback struct {
	Title       string
	LastUpdated string
	HTML        template.HTML
	// Description is also used when the CMS page has no meta description.
	Description string
}

// FallbackLegalPage returns the built-in privacy policy or terms. Any slug
// other than the terms slug gets the privacy policy.
func FallbackLegalPage(slug string) LegalFallback {
	if slug == TermsAndConditionsSlug {
		return LegalFallback{
			Title:       "Terms and Conditions",
			Description: "Terms and conditions for Westbourne Advisory legal services.",
			LastUpdated: fallbackLastUpdated,
			HTML:        readFallback("fallback/terms.html"),
		}
	}
	return LegalFallback{
		Title:       "Privacy Policy",
		Description: "Privacy policy for Westbourne Advisory legal services.",
		LastUpdated: fallbackLastUpdated,
		HTML:        readFallback("fallback/privacy.html"),
	}
}

func readFallback(name string) template.HTML {
	b, err := fallbackFS.ReadFile(name)
	if err != nil {
		panic(err)
	}
	return template.HTML(b)
}
