package music

import (
	"math"
	"strconv"
	"strings"

	"github.com/fhuszti/music-catalog-ms-go/internal/model"
	"github.com/fhuszti/music-catalog-ms-go/internal/port"
	"github.com/fhuszti/music-catalog-ms-go/internal/validation"
)

// Length limits follow the musics column widths.
type musicMetadata struct {
	Title     string   `json:"title"     validate:"required,max=255"`
	Authors   string   `json:"authors"   validate:"required,max=255"`
	Rating    *float64 `json:"rating"    validate:"required,gte=0,lte=5"`
	Genre     string   `json:"genre"     validate:"required,max=100"`
	Recommend *bool    `json:"recommend" validate:"required"`
}

// parseMetadata converts raw form values and validates them. Every failing
// field is reported, conversion failures included.
func parseMetadata(in port.MetadataInput) (*musicMetadata, error) {
	md := &musicMetadata{
		Title:   in.Title,
		Authors: in.Authors,
		Genre:   in.Genre,
	}
	fields := map[string]string{}

	if raw := strings.TrimSpace(in.Rating); raw != "" {
		r, err := strconv.ParseFloat(raw, 64)
		if err != nil || math.IsNaN(r) || math.IsInf(r, 0) {
			fields["rating"] = "number"
		} else {
			md.Rating = &r
		}
	}

	if raw := strings.TrimSpace(in.Recommend); raw != "" {
		switch strings.ToLower(raw) {
		case "true":
			b := true
			md.Recommend = &b
		case "false":
			b := false
			md.Recommend = &b
		default:
			fields["recommend"] = "boolean"
		}
	}

	if err := validation.ValidateStruct(md); err != nil {
		for f, tag := range validation.FieldErrors(err) {
			// a conversion failure is more telling than "required"
			if _, ok := fields[f]; !ok {
				fields[f] = tag
			}
		}
	}

	if len(fields) > 0 {
		return nil, &ValidationError{Fields: fields}
	}
	return md, nil
}

func (md *musicMetadata) toModel() *model.Music {
	return &model.Music{
		Title:     md.Title,
		Authors:   md.Authors,
		Rating:    *md.Rating,
		Genre:     md.Genre,
		Recommend: *md.Recommend,
	}
}

func (md *musicMetadata) toPatch() model.MusicPatch {
	title, authors, genre := md.Title, md.Authors, md.Genre
	rating, recommend := *md.Rating, *md.Recommend
	return model.MusicPatch{
		Title:     &title,
		Authors:   &authors,
		Rating:    &rating,
		Genre:     &genre,
		Recommend: &recommend,
	}
}
