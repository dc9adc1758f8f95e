package cmd

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	appdistribution "video-censor/application/distribution"
	appnotification "video-censor/application/notification"
	"video-censor/domain/distribution"
	"video-censor/domain/notification"
	"video-censor/infrastructure/config"
	"video-censor/infrastructure/drive"
	"video-censor/infrastructure/gmail"
	"video-censor/infrastructure/googleauth"
)

// Publisher uploads a cleaned video and returns its shareable link
type Publisher interface {
	Publish(ctx context.Context, videoPath string) (*distribution.UploadResult, error)
}

// Notifier emails recipients about a published video
type Notifier interface {
	Send(ctx context.Context, req appnotification.SendRequest) error
}

// DistributeOptions selects what happens after a video is cleaned
type DistributeOptions struct {
	Publish   bool
	Notify    bool
	FreeSpace bool
	To        []string // recipient queries; empty uses email.default_to
}

// Validate rejects flag combinations that cannot work
func (o DistributeOptions) Validate() error {
	if o.Notify && !o.Publish {
		return fmt.Errorf("--notify requires --publish")
	}
	return nil
}

// distribute publishes videoPath and optionally notifies recipients
func distribute(
	ctx context.Context,
	c *config.Config,
	publisher Publisher,
	notifier Notifier,
	videoPath string,
	censored int,
	opts DistributeOptions,
	output io.Writer,
) error {
	if !opts.Publish {
		return nil
	}

	// Resolve recipients before uploading so a typo fails fast
	var to []notification.Recipient
	if opts.Notify {
		lookup := config.NewRecipientLookup(c, cfgFile)
		var err error
		if len(opts.To) > 0 {
			to, err = lookup.LookupRecipients(opts.To)
		} else {
			to, err = lookup.DefaultRecipients()
		}
		if err != nil {
			return fmt.Errorf("failed to resolve recipients: %w", err)
		}
	}

	fmt.Fprintf(output, "Publishing to Google Drive...\n")
	result, err := publisher.Publish(ctx, videoPath)
	if err != nil {
		return fmt.Errorf("publish failed: %w", err)
	}
	fmt.Fprintf(output, "      Shared: %s\n\n", result.ShareableURL)

	if !opts.Notify {
		return nil
	}

	fmt.Fprintf(output, "Sending notification email...\n")
	err = notifier.Send(ctx, appnotification.SendRequest{
		To:            to,
		VideoName:     filepath.Base(videoPath),
		VideoURL:      result.ShareableURL,
		CensoredCount: censored,
	})
	if err != nil {
		return fmt.Errorf("notification failed: %w", err)
	}
	fmt.Fprintf(output, "      Sent to %d recipient(s)\n\n", len(to))

	return nil
}

// newGoogleDistributors authorizes once for both Drive and Gmail and builds
// the production publisher and notifier
func newGoogleDistributors(ctx context.Context, c *config.Config, opts DistributeOptions, output io.Writer) (Publisher, Notifier, error) {
	if !opts.Publish {
		return nil, nil, nil
	}

	httpClient, err := googleauth.HTTPClient(ctx, googleauth.Config{
		CredentialsFile: c.Google.CredentialsFile,
		TokenFile:       c.Google.TokenFile,
		Scopes:          []string{drive.Scope, gmail.Scope},
		Output:          output,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("google authorization failed: %w", err)
	}

	driveClient, err := drive.NewClient(ctx, httpClient)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create Google Drive client: %w", err)
	}
	uploadOpts := []appdistribution.UploadOption{appdistribution.WithUploadOutput(output)}
	if opts.FreeSpace {
		uploadOpts = append(uploadOpts, appdistribution.WithCleanup(
			appdistribution.NewCleanupService(driveClient, c.Google.FolderID)))
	}
	publisher := appdistribution.NewUploadService(driveClient, c.Google.FolderID, uploadOpts...)

	if !opts.Notify {
		return publisher, nil, nil
	}

	gmailService, err := gmail.NewGoogleGmailService(ctx, httpClient)
	if err != nil {
		return nil, nil, err
	}
	from := notification.Recipient{Name: c.Email.FromName, Address: c.Email.FromAddress}
	sender := gmail.NewClient(from, gmail.WithGmailService(gmailService))

	return publisher, appnotification.NewService(sender, c.Email.FromName), nil
}
