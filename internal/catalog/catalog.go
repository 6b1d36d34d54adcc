// Package catalog looks books up in the external catalog and turns volumes
// into book registrations.
package catalog

import (
	"regexp"
	"strings"

	"booklend/internal/book"
	"booklend/internal/platform/googlebooks"
)

// Volume is the catalog result shape returned to clients.
type Volume struct {
	ID         string     `json:"id"`
	VolumeInfo VolumeInfo `json:"volumeInfo"`
}

type VolumeInfo struct {
	Title               string               `json:"title"`
	Authors             []string             `json:"authors,omitempty"`
	Publisher           string               `json:"publisher,omitempty"`
	PublishedDate       string               `json:"publishedDate,omitempty"`
	IndustryIdentifiers []IndustryIdentifier `json:"industryIdentifiers,omitempty"`
	ImageLinks          *ImageLinks          `json:"imageLinks,omitempty"`
}

type IndustryIdentifier struct {
	Type       string `json:"type"`
	Identifier string `json:"identifier"`
}

type ImageLinks struct {
	Thumbnail      string `json:"thumbnail,omitempty"`
	SmallThumbnail string `json:"smallThumbnail,omitempty"`
}

type SearchResult struct {
	TotalItems int      `json:"totalItems"`
	Items      []Volume `json:"items"`
}

var (
	isbnSeparators = regexp.MustCompile(`[-\s]`)
	isbn10         = regexp.MustCompile(`^\d{9}[\dXx]$`)
	isbn13         = regexp.MustCompile(`^\d{13}$`)
)

// NormalizeQuery turns an ISBN-looking query ("978-4-87311-565-8") into an
// "isbn:" query and leaves anything else untouched.
func NormalizeQuery(query string) string {
	cleaned := isbnSeparators.ReplaceAllString(query, "")
	if isbn10.MatchString(cleaned) || isbn13.MatchString(cleaned) {
		return "isbn:" + cleaned
	}
	return query
}

// ISBN returns the volume's ISBN-13, falling back to its ISBN-10.
func (v Volume) ISBN() string {
	var fallback string
	for _, id := range v.VolumeInfo.IndustryIdentifiers {
		switch id.Type {
		case "ISBN_13":
			return id.Identifier
		case "ISBN_10":
			if fallback == "" {
				fallback = id.Identifier
			}
		}
	}
	return fallback
}

// BookInput builds the registration for a volume. CreatedBy is left for the
// caller.
func (v Volume) BookInput() book.Input {
	in := book.Input{
		Title:         v.VolumeInfo.Title,
		ISBN:          v.ISBN(),
		Authors:       v.VolumeInfo.Authors,
		Publisher:     v.VolumeInfo.Publisher,
		PublishedDate: v.VolumeInfo.PublishedDate,
		GoogleBooksID: v.ID,
	}
	if in.Authors == nil {
		in.Authors = []string{}
	}
	if v.VolumeInfo.ImageLinks != nil {
		in.ImageURL = v.VolumeInfo.ImageLinks.Thumbnail
	}
	return in
}

func fromAPI(v googlebooks.Volume) Volume {
	out := Volume{
		ID: v.ID,
		VolumeInfo: VolumeInfo{
			Title:         v.VolumeInfo.Title,
			Authors:       v.VolumeInfo.Authors,
			Publisher:     v.VolumeInfo.Publisher,
			PublishedDate: v.VolumeInfo.PublishedDate,
		},
	}
	for _, id := range v.VolumeInfo.IndustryIdentifiers {
		out.VolumeInfo.IndustryIdentifiers = append(out.VolumeInfo.IndustryIdentifiers,
			IndustryIdentifier{Type: id.Type, Identifier: strings.TrimSpace(id.Identifier)})
	}
	if links := v.VolumeInfo.ImageLinks; links != nil && (links.Thumbnail != "" || links.SmallThumbnail != "") {
		out.VolumeInfo.ImageLinks = &ImageLinks{Thumbnail: links.Thumbnail, SmallThumbnail: links.SmallThumbnail}
	}
	return out
}
