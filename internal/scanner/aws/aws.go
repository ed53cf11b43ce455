// Package aws discovers IAM access keys for the calling identity and
// shapes their metadata into tracked-credential descriptors. Only key
// IDs and dates are read; the secret access key is never visible
// through these APIs.
package aws

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/iam"
	"github.com/aws/aws-sdk-go-v2/service/iam/types"

	"github.com/keywarden/cli/internal/credential"
	"github.com/keywarden/cli/internal/scanner"
)

// AccessKeyLister is the subset of the IAM API the scanner needs.
type AccessKeyLister interface {
	ListAccessKeys(ctx context.Context, params *iam.ListAccessKeysInput, optFns ...func(*iam.Options)) (*iam.ListAccessKeysOutput, error)
}

// Scanner discovers IAM access keys via the AWS SDK's default
// credential chain.
type Scanner struct {
	client  AccessKeyLister
	cfg     aws.Config
	loadErr error
	log     *slog.Logger
}

// New builds a scanner from the ambient AWS configuration. A failed
// configuration load is not an error here: it makes the scanner
// report itself unavailable.
func New(ctx context.Context, region string, log *slog.Logger) *Scanner {
	var opts []func(*awsconfig.LoadOptions) error
	if region != "" {
		opts = append(opts, awsconfig.WithRegion(region))
	}
	cfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	s := &Scanner{cfg: cfg, loadErr: err, log: log}
	if err == nil {
		s.client = iam.NewFromConfig(cfg)
	}
	return s
}

// NewWithClient builds a scanner over an explicit IAM client, for
// tests.
func NewWithClient(client AccessKeyLister, log *slog.Logger) *Scanner {
	return &Scanner{client: client, log: log}
}

// Name implements scanner.Scanner.
func (s *Scanner) Name() string {
	return "aws"
}

// IsAvailable reports whether the SDK resolved usable credentials.
func (s *Scanner) IsAvailable(ctx context.Context) bool {
	if s.loadErr != nil {
		s.log.Debug("aws scanner unavailable", "error", s.loadErr)
		return false
	}
	if s.client == nil {
		return false
	}
	if s.cfg.Credentials == nil {
		// Injected test client; assume available.
		return true
	}
	if _, err := s.cfg.Credentials.Retrieve(ctx); err != nil {
		s.log.Debug("aws scanner unavailable", "error", err)
		return false
	}
	return true
}

// Scan lists the caller's IAM access keys. Key creation date doubles
// as the last-rotated date: rotating an access key means minting a new
// one.
func (s *Scanner) Scan(ctx context.Context) ([]scanner.Descriptor, error) {
	out, err := s.client.ListAccessKeys(ctx, &iam.ListAccessKeysInput{})
	if err != nil {
		return nil, fmt.Errorf("failed to list IAM access keys: %w", err)
	}

	descriptors := make([]scanner.Descriptor, 0, len(out.AccessKeyMetadata))
	for _, md := range out.AccessKeyMetadata {
		if md.AccessKeyId == nil {
			continue
		}
		d := scanner.Descriptor{
			Name:     fmt.Sprintf("aws-%s", strings.ToLower(*md.AccessKeyId)),
			Provider: "aws",
			Kind:     "access_key",
			Notes:    describeKey(md),
		}
		if md.CreateDate != nil {
			created := credential.DateOf(*md.CreateDate).Format(credential.DateLayout)
			d.CreatedAt = created
			d.LastRotated = created
		}
		descriptors = append(descriptors, d)
	}
	s.log.Info("aws scan complete", "keys", len(descriptors))
	return descriptors, nil
}

func describeKey(md types.AccessKeyMetadata) string {
	user := "unknown user"
	if md.UserName != nil {
		user = *md.UserName
	}
	return fmt.Sprintf("IAM access key for %s (%s)", user, md.Status)
}
