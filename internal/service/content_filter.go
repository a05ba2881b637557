package service

import (
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/noah-isme/studybuddy-api/internal/models"
)

// Content categories raised by the filter.
const (
	CategoryProfanity   = "profanity"
	CategoryHateSpeech  = "hate_speech"
	CategorySexual      = "sexual"
	CategoryScam        = "scam"
	CategoryURL         = "url"
	CategoryContactInfo = "contact_info"
	CategorySpam        = "spam"
	CategoryShouting    = "excessive_caps"
)

var (
	profanityWords = []string{"fuck", "fucking", "fucker", "shit", "shitty", "bullshit", "asshole", "bastard", "bitch", "cunt"}
	slurWords      = []string{"nigger", "nigga", "chink", "spic", "kike", "faggot", "fag", "retard", "retarded", "tranny"}
	sexualWords    = []string{"porn", "porno", "nude", "nudes"}
	scamWords      = []string{"scam", "scammer", "phishing", "malware"}
)

var categorySeverity = map[string]models.FlagSeverity{
	CategoryHateSpeech:  models.FlagSeverityCritical,
	CategorySexual:      models.FlagSeverityHigh,
	CategoryScam:        models.FlagSeverityHigh,
	CategoryProfanity:   models.FlagSeverityMedium,
	CategoryContactInfo: models.FlagSeverityMedium,
	CategoryURL:         models.FlagSeverityLow,
	CategorySpam:        models.FlagSeverityLow,
	CategoryShouting:    models.FlagSeverityLow,
}

var severityOrder = map[models.FlagSeverity]int{
	models.FlagSeverityLow:      1,
	models.FlagSeverityMedium:   2,
	models.FlagSeverityHigh:     3,
	models.FlagSeverityCritical: 4,
}

// FilterResult is the outcome of scanning a piece of text.
type FilterResult struct {
	Flagged    bool
	Categories []string
	Severity   models.FlagSeverity
}

// Reason renders the categories as a short human-readable reason.
func (r FilterResult) Reason() string {
	return "automatic filter: " + strings.Join(r.Categories, ", ")
}

// ContentFilter is a rule-based text screen for user-generated names and descriptions.
// It is safe for concurrent use once constructed.
type ContentFilter struct {
	words        map[string]*regexp.Regexp
	urlPattern   *regexp.Regexp
	emailPattern *regexp.Regexp
	phonePattern *regexp.Regexp
	repeated     *regexp.Regexp
	capsPattern  *regexp.Regexp
}

// NewContentFilter compiles the word lists and patterns.
func NewContentFilter() *ContentFilter {
	f := &ContentFilter{
		words:        map[string]*regexp.Regexp{},
		urlPattern:   regexp.MustCompile(`(?i)(https?://\S+|www\.\S+\.\S+)`),
		emailPattern: regexp.MustCompile(`(?i)\b[a-z0-9._%+-]+@[a-z0-9.-]+\.[a-z]{2,}\b`),
		phonePattern: regexp.MustCompile(`\+?\d{2,3}[-.\s]?\d{3,4}[-.\s]?\d{3,4}[-.\s]?\d{0,4}|\(\d{3}\)\s*\d{3}[-.\s]?\d{4}`),
		repeated:     regexp.MustCompile(repeatedCharPattern(5)),
		capsPattern:  regexp.MustCompile(`\b[A-Z]{5,}\b`),
	}
	f.words[CategoryProfanity] = wordPattern(profanityWords)
	f.words[CategoryHateSpeech] = wordPattern(slurWords)
	f.words[CategorySexual] = wordPattern(sexualWords)
	f.words[CategoryScam] = wordPattern(scamWords)
	return f
}

// Check scans text and reports every matching category with the highest severity among them.
func (f *ContentFilter) Check(text string) FilterResult {
	text = strings.TrimSpace(text)
	if text == "" {
		return FilterResult{}
	}

	var categories []string
	for _, category := range []string{CategoryHateSpeech, CategorySexual, CategoryScam, CategoryProfanity} {
		if f.words[category].MatchString(text) {
			categories = append(categories, category)
		}
	}
	if f.urlPattern.MatchString(text) {
		categories = append(categories, CategoryURL)
	}
	if f.emailPattern.MatchString(text) || f.phonePattern.MatchString(text) {
		categories = append(categories, CategoryContactInfo)
	}
	if f.repeated.MatchString(text) {
		categories = append(categories, CategorySpam)
	}
	if len(f.capsPattern.FindAllString(text, -1)) > 2 {
		categories = append(categories, CategoryShouting)
	}

	if len(categories) == 0 {
		return FilterResult{}
	}
	result := FilterResult{Flagged: true, Categories: categories, Severity: models.FlagSeverityLow}
	for _, c := range categories {
		if sev := categorySeverity[c]; severityOrder[sev] > severityOrder[result.Severity] {
			result.Severity = sev
		}
	}
	return result
}

// truncatePreview cuts text to the stored preview length on a rune boundary.
func truncatePreview(text string) string {
	text = strings.TrimSpace(text)
	if utf8.RuneCountInString(text) <= models.MaxContentPreview {
		return text
	}
	runes := []rune(text)
	return string(runes[:models.MaxContentPreview])
}

func wordPattern(words []string) *regexp.Regexp {
	quoted := make([]string, len(words))
	for i, w := range words {
		quoted[i] = regexp.QuoteMeta(w)
	}
	return regexp.MustCompile(`(?i)\b(` + strings.Join(quoted, "|") + `)\b`)
}

// repeatedCharPattern matches any letter or !?. repeated n or more times. RE2 has no
// backreferences so every character gets its own alternative.
func repeatedCharPattern(n int) string {
	chars := "abcdefghijklmnopqrstuvwxyz"
	parts := make([]string, 0, len(chars)+3)
	for _, c := range chars {
		parts = append(parts, string(c)+"{"+strconv.Itoa(n)+",}")
	}
	for _, c := range []string{`!`, `\?`, `\.`} {
		parts = append(parts, c+"{"+strconv.Itoa(n)+",}")
	}
	return `(?i)(` + strings.Join(parts, "|") + `)`
}
