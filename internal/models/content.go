package models

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

// ContentType discriminates the five catalog record kinds sharing the contents table.
type ContentType string

const (
	ContentTypeTools       ContentType = "tools"
	ContentTypePrompts     ContentType = "prompts"
	ContentTypeArticles    ContentType = "articles"
	ContentTypeNews        ContentType = "news"
	ContentTypeInfluencers ContentType = "influencers"
)

// ContentTypes lists every content type in menu order.
var ContentTypes = []ContentType{
	ContentTypeTools,
	ContentTypePrompts,
	ContentTypeArticles,
	ContentTypeNews,
	ContentTypeInfluencers,
}

// Valid reports whether t is a known content type.
func (t ContentType) Valid() bool {
	for _, known := range ContentTypes {
		if t == known {
			return true
		}
	}
	return false
}

// Singular is the display label used in messages ("Tool", "News", ...).
func (t ContentType) Singular() string {
	switch t {
	case ContentTypeTools:
		return "Tool"
	case ContentTypePrompts:
		return "Prompt"
	case ContentTypeArticles:
		return "Article"
	case ContentTypeNews:
		return "News"
	case ContentTypeInfluencers:
		return "Influencer"
	default:
		return "Content"
	}
}

// PlanType is the pricing plan of a tool.
type PlanType string

const (
	PlanFree    PlanType = "free"
	PlanPaid    PlanType = "paid"
	PlanPremium PlanType = "premium"
)

// Valid reports whether p is a known plan.
func (p PlanType) Valid() bool {
	return p == PlanFree || p == PlanPaid || p == PlanPremium
}

// Content is a catalog record: tool, prompt, article, news item or influencer.
type Content struct {
	ID               string      `db:"id"                json:"id"`
	Type             ContentType `db:"type"              json:"type"`
	Name             string      `db:"name"              json:"name"`
	Tagline          string      `db:"tagline"           json:"tagline"`
	Logo             string      `db:"logo"              json:"logo,omitempty"`
	BannerImage      string      `db:"banner_image"      json:"bannerImage,omitempty"`
	Images           StringArray `db:"images"            json:"images"`
	Categories       StringArray `db:"categories"        json:"categories"`
	PlanType         PlanType    `db:"plan_type"         json:"planType,omitempty"`
	UsersCount       int         `db:"users_count"       json:"usersCount"`
	Rating           float64     `db:"rating"            json:"rating"`
	ViewsCount       int         `db:"views_count"       json:"viewsCount"`
	AuthorBy         string      `db:"author_by"         json:"authorBy,omitempty"`
	AuthorLink       string      `db:"author_link"       json:"authorLink,omitempty"`
	AuthorRole       string      `db:"author_role"       json:"authorRole,omitempty"`
	AuthorLocation   string      `db:"author_location"   json:"authorLocation,omitempty"`
	CompanyName      string      `db:"company_name"      json:"companyName,omitempty"`
	ToolURL          string      `db:"tool_url"          json:"toolUrl,omitempty"`
	Price            string      `db:"price"             json:"price,omitempty"`
	Readtime         string      `db:"readtime"          json:"readtime,omitempty"`
	LaunchDate       string      `db:"launch_date"       json:"launchDate,omitempty"`
	Status           Status      `db:"status"            json:"status"`
	IsActive         bool        `db:"is_active"         json:"isActive"`
	Overview         string      `db:"overview"          json:"overview"`
	Description      string      `db:"description"       json:"description,omitempty"`
	HowToUse         string      `db:"how_to_use"        json:"howToUse,omitempty"`
	PromptTemplate   string      `db:"prompt_template"   json:"promptTemplate,omitempty"`
	Review           string      `db:"review"            json:"review,omitempty"`
	RecentActivities string      `db:"recent_activities" json:"recentActivities,omitempty"`
	Features         StringArray `db:"features"          json:"features"`
	UseCases         StringArray `db:"use_cases"         json:"useCases"`
	ToolPros         StringArray `db:"tool_pros"         json:"toolPros"`
	ToolCons         StringArray `db:"tool_cons"         json:"toolCons"`
	KeyAchievements  StringArray `db:"key_achievements"  json:"keyAchievements"`
	SocialMediaLinks StringArray `db:"social_media_links" json:"socialMediaLinks"`
	NewsLink         string      `db:"news_link"         json:"newsLink,omitempty"`
	VideoURL         string      `db:"video_url"         json:"videoUrl,omitempty"`
	CreatedAt        time.Time   `db:"created_at"        json:"createdAt"`
	UpdatedAt        time.Time   `db:"updated_at"        json:"updatedAt"`
}

func (c *Content) GetID() string { return c.ID }

// Init assigns identity and timestamps to a new record.
func (c *Content) Init(id string, now time.Time) {
	c.ID = id
	c.CreatedAt = now
	c.UpdatedAt = now
}

func (c *Content) Touch(now time.Time) { c.UpdatedAt = now }

// ToggleActive flips IsActive.
func (c *Content) ToggleActive() { c.IsActive = !c.IsActive }

// MatchesSearch is the case-insensitive name/tagline match used by list search.
func (c *Content) MatchesSearch(q string) bool {
	return containsFold(c.Name, q) || containsFold(c.Tagline, q)
}

// NeedsScrape reports whether a write with toolURL should trigger metadata scraping.
func (c *Content) NeedsScrape(previousURL string) bool {
	if c.ToolURL == "" || c.ToolURL == previousURL {
		return false
	}
	return c.Logo == "" || c.BannerImage == "" || c.Description == ""
}

// ContentRequest is the create/replace payload for content records.
type ContentRequest struct {
	Type             ContentType `binding:"required"               json:"type"`
	Name             string      `binding:"required,max=255"       json:"name"`
	Tagline          string      `binding:"required,max=500"       json:"tagline"`
	Overview         string      `binding:"required"               json:"overview"`
	Logo             string      `json:"logo"`
	BannerImage      string      `json:"bannerImage"`
	Images           StringArray `json:"images"`
	Categories       StringArray `json:"categories"`
	PlanType         PlanType    `json:"planType"`
	UsersCount       int         `binding:"omitempty,min=0"        json:"usersCount"`
	Rating           float64     `binding:"omitempty,min=0,max=5"  json:"rating"`
	ViewsCount       int         `binding:"omitempty,min=0"        json:"viewsCount"`
	AuthorBy         string      `json:"authorBy"`
	AuthorLink       string      `json:"authorLink"`
	AuthorRole       string      `json:"authorRole"`
	AuthorLocation   string      `json:"authorLocation"`
	CompanyName      string      `json:"companyName"`
	ToolURL          string      `binding:"omitempty,url"          json:"toolUrl"`
	Price            string      `json:"price"`
	Readtime         string      `json:"readtime"`
	LaunchDate       string      `json:"launchDate"`
	Status           Status      `json:"status"`
	IsActive         *bool       `json:"isActive"`
	Description      string      `json:"description"`
	HowToUse         string      `json:"howToUse"`
	PromptTemplate   string      `json:"promptTemplate"`
	Review           string      `json:"review"`
	RecentActivities string      `json:"recentActivities"`
	Features         StringArray `json:"features"`
	UseCases         StringArray `json:"useCases"`
	ToolPros         StringArray `json:"toolPros"`
	ToolCons         StringArray `json:"toolCons"`
	KeyAchievements  StringArray `json:"keyAchievements"`
	SocialMediaLinks StringArray `json:"socialMediaLinks"`
	NewsLink         string      `json:"newsLink"`
	VideoURL         string      `json:"videoUrl"`
}

// Clean trims plain text fields, drops blank list entries, defaults the status
// and clears the plan for anything that is not a tool.
func (r *ContentRequest) Clean() {
	for _, s := range []*string{
		&r.Name, &r.Tagline, &r.Logo, &r.BannerImage,
		&r.AuthorBy, &r.AuthorLink, &r.AuthorRole, &r.AuthorLocation, &r.CompanyName,
		&r.ToolURL, &r.Price, &r.Readtime, &r.LaunchDate, &r.NewsLink, &r.VideoURL,
	} {
		trimPtr(s)
	}
	r.Type = ContentType(strings.ToLower(strings.TrimSpace(string(r.Type))))

	r.Images = r.Images.Compact()
	r.Categories = r.Categories.Compact()
	r.Features = r.Features.Compact()
	r.UseCases = r.UseCases.Compact()
	r.ToolPros = r.ToolPros.Compact()
	r.ToolCons = r.ToolCons.Compact()
	r.KeyAchievements = r.KeyAchievements.Compact()
	r.SocialMediaLinks = r.SocialMediaLinks.Compact()

	if r.Type != ContentTypeTools {
		r.PlanType = ""
	}
	if r.Status == "" {
		r.Status = StatusDraft
	}
}

// Validate checks a cleaned request. maxImages bounds len(Images).
func (r *ContentRequest) Validate(maxImages int) error {
	var errs ValidationErrors

	if !r.Type.Valid() {
		errs.add("type", "must be one of tools, prompts, articles, news, influencers")
	}
	if r.Name == "" {
		errs.add("name", "is required")
	}
	if r.Tagline == "" {
		errs.add("tagline", "is required")
	}
	if strings.TrimSpace(r.Overview) == "" {
		errs.add("overview", "is required")
	}
	if r.PlanType != "" && !r.PlanType.Valid() {
		errs.add("planType", "must be one of free, paid, premium")
	}
	if !r.Status.Valid() {
		errs.add("status", "must be one of Draft, Published, Unpublished")
	}
	if r.Rating < 0 || r.Rating > 5 {
		errs.add("rating", "must be between 0 and 5")
	}
	if r.UsersCount < 0 {
		errs.add("usersCount", "must not be negative")
	}
	if r.ViewsCount < 0 {
		errs.add("viewsCount", "must not be negative")
	}
	if r.ToolURL != "" && !isWebURL(r.ToolURL) {
		errs.add("toolUrl", "must be an absolute http or https URL")
	}
	if maxImages > 0 && len(r.Images) > maxImages {
		errs.add("images", fmt.Sprintf("at most %d images are allowed", maxImages))
	}

	return errs.orNil()
}

func isWebURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return false
	}
	return u.Scheme == "http" || u.Scheme == "https"
}

// NewContent builds an active record from the request.
func (r *ContentRequest) NewContent() *Content {
	c := &Content{IsActive: true}
	r.ApplyTo(c)
	c.IsActive = true
	return c
}

// ApplyTo replaces every editable field of c with the request values.
func (r *ContentRequest) ApplyTo(c *Content) {
	c.Type = r.Type
	c.Name = r.Name
	c.Tagline = r.Tagline
	c.Overview = r.Overview
	c.Logo = r.Logo
	c.BannerImage = r.BannerImage
	c.Images = r.Images
	c.Categories = r.Categories
	c.PlanType = r.PlanType
	c.UsersCount = r.UsersCount
	c.Rating = r.Rating
	c.ViewsCount = r.ViewsCount
	c.AuthorBy = r.AuthorBy
	c.AuthorLink = r.AuthorLink
	c.AuthorRole = r.AuthorRole
	c.AuthorLocation = r.AuthorLocation
	c.CompanyName = r.CompanyName
	c.ToolURL = r.ToolURL
	c.Price = r.Price
	c.Readtime = r.Readtime
	c.LaunchDate = r.LaunchDate
	c.Status = r.Status
	c.Description = r.Description
	c.HowToUse = r.HowToUse
	c.PromptTemplate = r.PromptTemplate
	c.Review = r.Review
	c.RecentActivities = r.RecentActivities
	c.Features = r.Features
	c.UseCases = r.UseCases
	c.ToolPros = r.ToolPros
	c.ToolCons = r.ToolCons
	c.KeyAchievements = r.KeyAchievements
	c.SocialMediaLinks = r.SocialMediaLinks
	c.NewsLink = r.NewsLink
	c.VideoURL = r.VideoURL
	if r.IsActive != nil {
		c.IsActive = *r.IsActive
	}
}

// ContentFilter narrows content lists beyond ListParams.
type ContentFilter struct {
	Type     ContentType `form:"type"`
	Status   Status      `form:"status"`
	IsActive *bool       `form:"isActive"`
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
