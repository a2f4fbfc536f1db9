// Package blob 提供图片容器的 SAS 签发与图片读写。
package blob

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidContainer        = errors.New("blob: invalid container name")
	ErrMissingConnectionString = errors.New("blob: missing Azure Storage connection string")
)

// ImagesContainer is the only container the dashboard may sign.
const ImagesContainer = "images"

// ConnectionString holds the fields of an Azure storage connection string
// that are needed for shared key signing.
type ConnectionString struct {
	AccountName           string
	AccountKey            string
	EndpointSuffix        string
	DefaultEndpointsProto string
	BlobEndpoint          string
}

// ParseConnectionString reads "Key=Value;..." pairs. Values may contain "=".
func ParseConnectionString(raw string) (ConnectionString, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ConnectionString{}, ErrMissingConnectionString
	}

	var cs ConnectionString
	for _, part := range strings.Split(raw, ";") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		key, value, ok := strings.Cut(part, "=")
		if !ok {
			return ConnectionString{}, fmt.Errorf("malformed connection string segment %q", key)
		}
		switch strings.ToLower(key) {
		case "accountname":
			cs.AccountName = value
		case "accountkey":
			cs.AccountKey = value
		case "endpointsuffix":
			cs.EndpointSuffix = value
		case "defaultendpointsprotocol":
			cs.DefaultEndpointsProto = value
		case "blobendpoint":
			cs.BlobEndpoint = value
		}
	}

	if cs.AccountName == "" || cs.AccountKey == "" {
		return ConnectionString{}, errors.New("connection string requires AccountName and AccountKey")
	}
	if cs.EndpointSuffix == "" {
		cs.EndpointSuffix = "core.windows.net"
	}
	if cs.DefaultEndpointsProto == "" {
		cs.DefaultEndpointsProto = "https"
	}
	return cs, nil
}

// ServiceURL is the blob service endpoint, always ending in "/".
func (cs ConnectionString) ServiceURL() string {
	if cs.BlobEndpoint != "" {
		return strings.TrimSuffix(cs.BlobEndpoint, "/") + "/"
	}
	return fmt.Sprintf("%s://%s.blob.%s/", cs.DefaultEndpointsProto, cs.AccountName, cs.EndpointSuffix)
}
