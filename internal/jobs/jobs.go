// Package jobs maps a classified resume role onto a canonical search phrase,
// pulls recent listings from the JSearch API, and formats the survivors. The
// language model only reformats listings verbatim; when it fails, a
// deterministic plain-text enumeration takes over. Formatting degrades, it
// never fails.
package jobs

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/olamideoke/resumerag/internal/domain"
	"github.com/olamideoke/resumerag/internal/llm"
)

const (
	rapidAPIHost     = "jsearch.p.rapidapi.com"
	defaultSearchURL = "https://jsearch.p.rapidapi.com/search"

	fetchTimeout    = 10 * time.Second
	maxListings     = 5
	excerptChars    = 300
	formatMaxTokens = 1500

	// DefaultRole is used when the classified role matches no table entry.
	DefaultRole = "software developer"

	// NoOpeningsMessage is the fixed reply for an empty result set.
	NoOpeningsMessage = "No matching technical job openings were found for your resume role at the moment."
)

// techRoles is the ordered rule table for role resolution: the first phrase
// contained in the classified role wins.
var techRoles = []string{
	"frontend developer",
	"backend developer",
	"full stack developer",
	"react developer",
	"web developer",
	"python developer",
	"nodejs developer",
	"software engineer",
	"data analyst",
	"data scientist",
	"machine learning engineer",
	"ai engineer",
}

// techKeywords gate listing titles: at least one must appear for a listing
// to count as technical.
var techKeywords = []string{
	"engineer", "developer", "software",
	"frontend", "backend", "full stack",
	"data", "ml", "ai",
}

const formatterPrompt = `You are a job listing formatter.

STRICT RULES:
- DO NOT explain anything
- DO NOT analyze the resume
- DO NOT recommend jobs
- DO NOT add introductions or conclusions
- ONLY format the given jobs
- DO NOT invent information

Format EXACTLY as provided.

%s`

// Client talks to the external job-search API.
type Client struct {
	http      *http.Client
	apiKey    string
	searchURL string
	llm       llm.Client
}

func NewClient(apiKey string, model llm.Client) *Client {
	return &Client{
		http:      &http.Client{Timeout: fetchTimeout},
		apiKey:    apiKey,
		searchURL: defaultSearchURL,
		llm:       model,
	}
}

// ResolveRole lowercases the classified role and returns the first canonical
// phrase it contains, or DefaultRole.
func ResolveRole(classified string) string {
	detected := strings.ToLower(classified)
	for _, role := range techRoles {
		if strings.Contains(detected, role) {
			return role
		}
	}
	return DefaultRole
}

// FormatJobs runs the whole flow for a classified role: resolve, fetch,
// filter, format. It always returns presentable text.
func (c *Client) FormatJobs(ctx context.Context, classifiedRole string) string {
	role := ResolveRole(classifiedRole)
	query := role + " jobs"
	log.Printf("job search query: %q", query)

	listings, err := c.fetch(ctx, query)
	if err != nil {
		log.Printf("job fetch failed, treating as empty: %v", err)
		listings = nil
	}
	if len(listings) == 0 {
		return NoOpeningsMessage
	}

	prompt := fmt.Sprintf(formatterPrompt, listingsText(listings))
	formatted, err := c.llm.Generate(ctx, "job formatting", prompt, formatMaxTokens)
	if err != nil {
		log.Printf("job formatting failed, using plain fallback: %v", err)
		return fallbackFormat(listings)
	}
	return strings.TrimSpace(formatted)
}

// apiJob mirrors the JSearch response fields this worker reads.
type apiJob struct {
	JobTitle               string `json:"job_title"`
	EmployerName           string `json:"employer_name"`
	JobLocation            string `json:"job_location"`
	JobEmploymentTypeText  string `json:"job_employment_type_text"`
	JobIsRemote            bool   `json:"job_is_remote"`
	JobPostedHumanReadable string `json:"job_posted_human_readable"`
	JobDescription         string `json:"job_description"`
	JobApplyLink           string `json:"job_apply_link"`
}

type searchResponse struct {
	Data []apiJob `json:"data"`
}

// fetch queries the API for one page of listings posted in the past week and
// keeps up to maxListings whose titles pass both the technical-keyword and
// role-phrase filters, in listing order.
func (c *Client) fetch(ctx context.Context, query string) ([]domain.JobListing, error) {
	if c.apiKey == "" {
		return nil, nil
	}

	params := url.Values{}
	params.Set("query", query)
	params.Set("page", "1")
	params.Set("num_pages", "1")
	params.Set("date_posted", "week")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.searchURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, &domain.ExternalServiceError{Service: "jsearch", Err: err}
	}
	req.Header.Set("x-rapidapi-key", c.apiKey)
	req.Header.Set("x-rapidapi-host", rapidAPIHost)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &domain.ExternalServiceError{Service: "jsearch", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &domain.ExternalServiceError{Service: "jsearch", Err: fmt.Errorf("status %d", resp.StatusCode)}
	}

	var payload searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, &domain.ExternalServiceError{Service: "jsearch", Err: err}
	}

	rolePhrase := strings.ToLower(strings.TrimSuffix(query, " jobs"))

	var listings []domain.JobListing
	for _, job := range payload.Data {
		title := strings.ToLower(job.JobTitle)

		if !containsAny(title, techKeywords) {
			continue
		}
		if !strings.Contains(title, rolePhrase) {
			continue
		}

		listings = append(listings, domain.JobListing{
			Title:          job.JobTitle,
			Company:        job.EmployerName,
			Location:       job.JobLocation,
			EmploymentType: job.JobEmploymentTypeText,
			Remote:         job.JobIsRemote,
			Posted:         job.JobPostedHumanReadable,
			Description:    excerpt(job.JobDescription),
			ApplyLink:      job.JobApplyLink,
		})
		if len(listings) == maxListings {
			break
		}
	}
	return listings, nil
}

func containsAny(s string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}

func excerpt(description string) string {
	if len(description) > excerptChars {
		description = description[:excerptChars]
	}
	return description + "..."
}

func listingsText(listings []domain.JobListing) string {
	var b strings.Builder
	for i, job := range listings {
		remote := "No"
		if job.Remote {
			remote = "Yes"
		}
		fmt.Fprintf(&b, "\nJob %d:\nTitle: %s\nCompany: %s\nLocation: %s\nEmployment Type: %s\nRemote: %s\nPosted: %s\nApply Link: %s\n\nDescription:\n%s\n---\n\n",
			i+1, job.Title, job.Company, job.Location, job.EmploymentType, remote, job.Posted, job.ApplyLink, job.Description)
	}
	return b.String()
}

// fallbackFormat is the deterministic enumeration used when the model call
// fails on a non-empty result set.
func fallbackFormat(listings []domain.JobListing) string {
	var b strings.Builder
	b.WriteString("Top matching technical jobs:\n\n")
	for i, job := range listings {
		fmt.Fprintf(&b, "%d. %s at %s (%s)\nApply: %s\n\n", i+1, job.Title, job.Company, job.Location, job.ApplyLink)
	}
	return b.String()
}
