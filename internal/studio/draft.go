package studio

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/therealutkarshpriyadarshi/nexus/internal/store"
	"github.com/therealutkarshpriyadarshi/nexus/pkg/models"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Draft is an upload waiting to be published
type Draft struct {
	Title       string           `validate:"required,max=100"`
	Description string           `validate:"max=5000"`
	Tags        []string         `validate:"max=30,dive,required,max=64"`
	Type        models.VideoType `validate:"required,oneof=video reel"`
	VideoURL    string           `validate:"required,url"`
	Thumbnail   string
	Size        int64 `validate:"gte=0"`
}

func (d *Draft) normalize() {
	d.Title = strings.TrimSpace(d.Title)
	d.Description = strings.TrimSpace(d.Description)

	tags := make([]string, 0, len(d.Tags))
	for _, tag := range d.Tags {
		if tag = strings.TrimSpace(tag); tag != "" {
			tags = append(tags, tag)
		}
	}
	d.Tags = tags
}

// Validate checks the draft. Failures wrap store.ErrValidationFailed and
// name the offending fields.
func (d *Draft) Validate() error {
	err := validate.Struct(d)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", store.ErrValidationFailed, err)
	}

	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fmt.Sprintf("%s (%s)", fe.Field(), fe.Tag()))
	}
	return fmt.Errorf("%w: %s", store.ErrValidationFailed, strings.Join(fields, ", "))
}
