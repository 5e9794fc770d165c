package pipeline

import (
	"context"
	"errors"
	"net/http"

	"github.com/matzehuels/wallcheck/pkg/blueprint"
	"github.com/matzehuels/wallcheck/pkg/entity"
	wcerrors "github.com/matzehuels/wallcheck/pkg/errors"
	"github.com/matzehuels/wallcheck/pkg/httputil"
	"github.com/matzehuels/wallcheck/pkg/reach"
	"github.com/matzehuels/wallcheck/pkg/store"
)

// classify wraps err with the code matching its cause. Errors that already
// carry a code pass through unchanged.
func classify(stage string, err error) error {
	if wcerrors.GetCode(err) != "" {
		return err
	}

	var status *httputil.StatusError
	code := wcerrors.ErrCodeInternal
	switch {
	case errors.Is(err, blueprint.ErrInvalidBlueprint),
		errors.Is(err, blueprint.ErrUnsupportedVersion),
		errors.Is(err, reach.ErrExtentTooLarge):
		code = wcerrors.ErrCodeInvalidBlueprint
	case errors.Is(err, blueprint.ErrBlueprintBook):
		code = wcerrors.ErrCodeUnsupported
	case errors.Is(err, entity.ErrUnsupportedVariant):
		code = wcerrors.ErrCodeUnsupportedVariant
	case errors.Is(err, store.ErrNotFound):
		code = wcerrors.ErrCodeNotFound
	case errors.Is(err, context.DeadlineExceeded):
		code = wcerrors.ErrCodeTimeout
	case errors.As(err, &status) && status.StatusCode == http.StatusNotFound:
		code = wcerrors.ErrCodeNotFound
	case stage == "fetch":
		code = wcerrors.ErrCodeNetwork
	}
	return wcerrors.Wrap(code, err, "%s", stage)
}
