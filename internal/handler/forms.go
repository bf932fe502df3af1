package handler

import (
	"errors"
	"fmt"
	"math"
	"mime/multipart"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/Abdurahmanit/GroupProject/wanderlust/internal/adapter/storage/s3"
	"github.com/Abdurahmanit/GroupProject/wanderlust/internal/apperror"
	"github.com/Abdurahmanit/GroupProject/wanderlust/internal/domain"
	"github.com/go-playground/validator/v10"
)

const imageField = "listing[image]"

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := fld.Tag.Get("form")
		if name == "" || name == "-" {
			return fld.Name
		}
		return fieldLabel(name)
	})
	return v
}

// fieldLabel turns listing[title] into listing.title.
func fieldLabel(name string) string {
	name = strings.ReplaceAll(name, "[", ".")
	return strings.ReplaceAll(name, "]", "")
}

type listingForm struct {
	Title       string   `form:"listing[title]" validate:"required"`
	Description string   `form:"listing[description]" validate:"required"`
	Price       *float64 `form:"listing[price]" validate:"required,gte=0"`
	Location    string   `form:"listing[location]" validate:"required"`
}

func (f listingForm) input() domain.ListingInput {
	return domain.ListingInput{Title: f.Title, Description: f.Description, Price: *f.Price, Location: f.Location}
}

type reviewForm struct {
	Comment string `form:"review[comment]" validate:"required"`
	Rating  *int   `form:"review[rating]" validate:"required,gte=1,lte=5"`
}

func (f reviewForm) input() domain.ReviewInput {
	return domain.ReviewInput{Comment: f.Comment, Rating: *f.Rating}
}

type signupForm struct {
	Username string `form:"username" validate:"required"`
	Email    string `form:"email" validate:"required,email"`
	Password string `form:"password" validate:"required"`
}

func formValue(r *http.Request, name string) string {
	return strings.TrimSpace(r.PostFormValue(name))
}

// parseListingForm reads and validates the listing fields. Type errors and
// constraint violations are reported together.
func parseListingForm(r *http.Request) (listingForm, error) {
	var problems []string
	f := listingForm{
		Title:       formValue(r, "listing[title]"),
		Description: formValue(r, "listing[description]"),
		Location:    formValue(r, "listing[location]"),
	}
	if raw := formValue(r, "listing[price]"); raw != "" {
		p, err := strconv.ParseFloat(raw, 64)
		if err != nil || math.IsInf(p, 0) || math.IsNaN(p) {
			problems = append(problems, `"listing.price" must be a number`)
		} else {
			f.Price = &p
		}
	}
	problems = append(problems, violations(f, problems)...)
	if len(problems) > 0 {
		return f, apperror.BadRequest(strings.Join(problems, ", "))
	}
	return f, nil
}

func parseReviewForm(r *http.Request) (reviewForm, error) {
	var problems []string
	f := reviewForm{Comment: formValue(r, "review[comment]")}
	if raw := formValue(r, "review[rating]"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			problems = append(problems, `"review.rating" must be a number`)
		} else {
			f.Rating = &n
		}
	}
	problems = append(problems, violations(f, problems)...)
	if len(problems) > 0 {
		return f, apperror.BadRequest(strings.Join(problems, ", "))
	}
	return f, nil
}

func parseSignupForm(r *http.Request) (signupForm, error) {
	f := signupForm{
		Username: formValue(r, "username"),
		Email:    formValue(r, "email"),
		Password: r.PostFormValue("password"),
	}
	if problems := violations(f, nil); len(problems) > 0 {
		return f, apperror.BadRequest(strings.Join(problems, ", "))
	}
	return f, nil
}

// violations runs the struct rules, skipping fields that already failed to
// parse.
func violations(form interface{}, typeErrors []string) []string {
	err := validate.Struct(form)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []string{err.Error()}
	}
	var out []string
	for _, fe := range verrs {
		name := fe.Field()
		if alreadyReported(typeErrors, name) {
			continue
		}
		out = append(out, messageFor(name, fe))
	}
	return out
}

func alreadyReported(typeErrors []string, field string) bool {
	prefix := `"` + field + `"`
	for _, msg := range typeErrors {
		if strings.HasPrefix(msg, prefix) {
			return true
		}
	}
	return false
}

func messageFor(field string, fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%q is required", field)
	case "gte":
		return fmt.Sprintf("%q must be greater than or equal to %s", field, fe.Param())
	case "lte":
		return fmt.Sprintf("%q must be less than or equal to %s", field, fe.Param())
	case "email":
		return fmt.Sprintf("%q must be a valid email", field)
	default:
		return fmt.Sprintf("%q is invalid", field)
	}
}

// parseMultipart reads a listing form body, capped at maxBytes of file data.
func (h *Handler) parseMultipart(w http.ResponseWriter, r *http.Request) error {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUpload+(1<<20))
	ct := r.Header.Get("Content-Type")
	if !strings.HasPrefix(ct, "multipart/form-data") {
		return r.ParseForm()
	}
	if err := r.ParseMultipartForm(h.maxUpload); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return apperror.BadRequest(fmt.Sprintf("Image must be at most %d MB", h.maxUpload>>20))
		}
		return apperror.BadRequest("Invalid form data")
	}
	return nil
}

// imageUpload returns the uploaded listing image, or nil when none was sent.
// The caller closes the returned file.
func (h *Handler) imageUpload(r *http.Request) (*domain.ImageUpload, multipart.File, error) {
	if r.MultipartForm == nil {
		return nil, nil, nil
	}
	file, header, err := r.FormFile(imageField)
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil, nil
	}
	if err != nil {
		return nil, nil, apperror.BadRequest("Invalid image upload")
	}
	if header.Filename == "" || header.Size == 0 {
		file.Close()
		return nil, nil, nil
	}
	if !s3.AllowedFormat(header.Filename) {
		file.Close()
		return nil, nil, apperror.BadRequest("Image must be a jpg, jpeg or png file")
	}
	if header.Size > h.maxUpload {
		file.Close()
		return nil, nil, apperror.BadRequest(fmt.Sprintf("Image must be at most %d MB", h.maxUpload>>20))
	}
	return &domain.ImageUpload{
		FileName:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
		Data:        file,
	}, file, nil
}
