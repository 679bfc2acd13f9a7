package usecase

import (
	"errors"
	"fmt"

	"musicstream/internal/domain"
)

var (
	ErrExtractor = errors.New("extractor error")
	ErrCatalog   = errors.New("catalog error")
)

func wrapExtractor(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %v", ErrExtractor, err)
}

// wrapCatalog marks an upstream catalog failure. Not-found results are
// passed through untouched so handlers can keep mapping them to 404.
func wrapCatalog(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrNotFound) {
		return err
	}
	return fmt.Errorf("%w: %v", ErrCatalog, err)
}
