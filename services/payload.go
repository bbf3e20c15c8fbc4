package services

import (
	"context"
	"fmt"

	"wavechat/domain"
	"wavechat/errors"
	"wavechat/media"
	"wavechat/moderation"
)

// buildPayload uploads attachments and applies moderation to the text.
// Ordering matters: the emptiness check runs first so an all-empty send is
// rejected with no side effects, and a failed upload rejects the whole send
// before anything is persisted.
func buildPayload(ctx context.Context, uploads media.Store, filter *moderation.Filter, req SendMessageRequest) (domain.Payload, error) {
	if err := (domain.Payload{Text: req.Text, Image: req.Image, Document: req.Document}).Validate(); err != nil {
		return domain.Payload{}, err
	}

	payload := domain.Payload{Text: filter.Clean(req.Text)}

	if req.Image != "" {
		data, err := media.DecodeDataURI(req.Image)
		if err != nil {
			return domain.Payload{}, fmt.Errorf("%w: %v", errors.ErrUploadFailed, err)
		}
		url, err := uploads.Upload(ctx, data, "")
		if err != nil {
			return domain.Payload{}, fmt.Errorf("%w: %v", errors.ErrUploadUnavailable, err)
		}
		payload.Image = url
	}

	if req.Document != "" {
		data, err := media.DecodeDataURI(req.Document)
		if err != nil {
			return domain.Payload{}, fmt.Errorf("%w: %v", errors.ErrUploadFailed, err)
		}
		url, err := uploads.Upload(ctx, data, req.DocumentName)
		if err != nil {
			return domain.Payload{}, fmt.Errorf("%w: %v", errors.ErrUploadUnavailable, err)
		}
		payload.Document = url
		payload.DocumentName = req.DocumentName
	}

	return payload, nil
}
