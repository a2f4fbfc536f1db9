package blob

import (
	"context"
	"fmt"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/bloberror"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/sas"
	"github.com/resumedash/internal/metrics"
)

// SASValidity is how long an issued container SAS stays usable.
const SASValidity = time.Hour

var allowedContainers = map[string]bool{ImagesContainer: true}

// Signer issues container SAS URLs from a shared key connection string.
type Signer struct {
	conn   ConnectionString
	cred   *azblob.SharedKeyCredential
	client *azblob.Client
	now    func() time.Time
}

func NewSigner(connectionString string) (*Signer, error) {
	conn, err := ParseConnectionString(connectionString)
	if err != nil {
		return nil, err
	}
	cred, err := azblob.NewSharedKeyCredential(conn.AccountName, conn.AccountKey)
	if err != nil {
		return nil, fmt.Errorf("shared key credential: %w", err)
	}
	client, err := azblob.NewClientWithSharedKeyCredential(conn.ServiceURL(), cred, nil)
	if err != nil {
		return nil, fmt.Errorf("blob client: %w", err)
	}
	return &Signer{conn: conn, cred: cred, client: client, now: time.Now}, nil
}

// ContainerSASURL makes sure the container exists and returns its URL with a
// one hour HTTPS-only SAS granting read, add, create, write, delete and list.
func (s *Signer) ContainerSASURL(ctx context.Context, containerName string) (_ string, err error) {
	defer func() { metrics.IncrementBlobOperation("sas", err) }()

	if !allowedContainers[containerName] {
		return "", ErrInvalidContainer
	}

	containerClient := s.client.ServiceClient().NewContainerClient(containerName)
	if _, err := containerClient.Create(ctx, nil); err != nil && !bloberror.HasCode(err, bloberror.ContainerAlreadyExists) {
		return "", fmt.Errorf("create container: %w", err)
	}

	query, err := s.sign(containerName)
	if err != nil {
		return "", err
	}
	return containerClient.URL() + "?" + query, nil
}

func (s *Signer) sign(containerName string) (string, error) {
	start := s.now().UTC()
	perms := sas.ContainerPermissions{Read: true, Add: true, Create: true, Write: true, Delete: true, List: true}

	values := sas.BlobSignatureValues{
		Protocol:      sas.ProtocolHTTPS,
		StartTime:     start,
		ExpiryTime:    start.Add(SASValidity),
		Permissions:   perms.String(),
		ContainerName: containerName,
	}
	params, err := values.SignWithSharedKey(s.cred)
	if err != nil {
		return "", fmt.Errorf("sign sas: %w", err)
	}
	return params.Encode(), nil
}
