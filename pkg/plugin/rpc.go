package plugin

import (
	"context"
	"net/rpc"

	"github.com/hashicorp/go-plugin"
)

// ClassifierRPC implements the go-plugin Plugin interface for classifiers.
type ClassifierRPC struct {
	plugin.Plugin
	Impl Classifier
}

// Server returns an RPC server for this plugin.
func (p *ClassifierRPC) Server(*plugin.MuxBroker) (any, error) {
	return &ClassifierRPCServer{Impl: p.Impl}, nil
}

// Client returns an RPC client for this plugin.
func (p *ClassifierRPC) Client(_ *plugin.MuxBroker, c *rpc.Client) (any, error) {
	return &ClassifierRPCClient{client: c}, nil
}

// ClassifierRPCServer is the RPC server implementation for classifiers.
type ClassifierRPCServer struct {
	Impl Classifier
}

// Classify implements the RPC method for classification.
func (s *ClassifierRPCServer) Classify(req ClassifyRequest, resp *ClassifyResponse) error {
	result, err := s.Impl.Classify(context.Background(), req)
	if err != nil {
		return err
	}
	if result != nil {
		*resp = *result
	}
	return nil
}

// GetMetadata implements the RPC method for fetching plugin metadata.
func (s *ClassifierRPCServer) GetMetadata(_ any, resp *PluginInfo) error {
	*resp = s.Impl.GetMetadata()
	return nil
}

// ClassifierRPCClient is the RPC client implementation for classifiers.
type ClassifierRPCClient struct {
	client *rpc.Client
}

// Classify calls the remote Classify method. net/rpc has no cancellation, so
// ctx is honoured by the caller killing the plugin process.
func (c *ClassifierRPCClient) Classify(_ context.Context, req ClassifyRequest) (*ClassifyResponse, error) {
	var resp ClassifyResponse
	if err := c.client.Call("Plugin.Classify", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetMetadata calls the remote GetMetadata method.
func (c *ClassifierRPCClient) GetMetadata() PluginInfo {
	var info PluginInfo
	if err := c.client.Call("Plugin.GetMetadata", new(any), &info); err != nil {
		return PluginInfo{}
	}
	return info
}
