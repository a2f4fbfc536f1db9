package blob

import (
	"context"
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/blob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/blockblob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/container"
)

// Container is the subset of blob container operations the image flow uses.
type Container interface {
	HasFilesUnder(ctx context.Context, directory string) (bool, error)
	List(ctx context.Context, prefix string) ([]string, error)
	Upload(ctx context.Context, name string, data []byte, contentType string) error
	Delete(ctx context.Context, name string) error
	URL(name string) string
}

// ContainerOpener returns a container handle for one operation.
type ContainerOpener func(ctx context.Context) (Container, error)

// SignedOpener issues a fresh images SAS for every operation.
func SignedOpener(s *Signer) ContainerOpener {
	return func(ctx context.Context) (Container, error) {
		sasURL, err := s.ContainerSASURL(ctx, ImagesContainer)
		if err != nil {
			return nil, err
		}
		return OpenContainer(sasURL)
	}
}

// AzureContainer is a Container backed by a SAS-authorized container client.
type AzureContainer struct {
	client *container.Client
}

func OpenContainer(sasURL string) (*AzureContainer, error) {
	client, err := container.NewClientWithNoCredential(sasURL, nil)
	if err != nil {
		return nil, fmt.Errorf("open container: %w", err)
	}
	return &AzureContainer{client: client}, nil
}

// HasFilesUnder stops at the first blob directly below directory.
func (c *AzureContainer) HasFilesUnder(ctx context.Context, directory string) (bool, error) {
	pager := c.client.NewListBlobsHierarchyPager("/", &container.ListBlobsHierarchyOptions{Prefix: &directory})
	for pager.More() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			return false, err
		}
		if page.Segment != nil && len(page.Segment.BlobItems) > 0 {
			return true, nil
		}
	}
	return false, nil
}

func (c *AzureContainer) List(ctx context.Context, prefix string) ([]string, error) {
	var names []string
	pager := c.client.NewListBlobsFlatPager(&container.ListBlobsFlatOptions{Prefix: &prefix})
	for pager.More() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		if page.Segment == nil {
			continue
		}
		for _, item := range page.Segment.BlobItems {
			if item.Name != nil {
				names = append(names, *item.Name)
			}
		}
	}
	return names, nil
}

func (c *AzureContainer) Upload(ctx context.Context, name string, data []byte, contentType string) error {
	_, err := c.client.NewBlockBlobClient(name).UploadBuffer(ctx, data, &blockblob.UploadBufferOptions{
		HTTPHeaders: &blob.HTTPHeaders{BlobContentType: &contentType},
	})
	return err
}

func (c *AzureContainer) Delete(ctx context.Context, name string) error {
	_, err := c.client.NewBlobClient(name).Delete(ctx, nil)
	return err
}

func (c *AzureContainer) URL(name string) string {
	return c.client.NewBlobClient(name).URL()
}
