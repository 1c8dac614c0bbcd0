package server

import (
	"context"
	"errors"
	"fmt"
	"sync"

	api "k8s.io/examples/AI/sequencecloud/pkg/api/v1alpha1"
	"k8s.io/examples/AI/sequencecloud/pkg/engine"
	"k8s.io/examples/AI/sequencecloud/pkg/engine/sequence"
	"k8s.io/examples/AI/sequencecloud/pkg/modelconfig"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"k8s.io/klog/v2"
)

// SequenceServer serves Execute calls for a set of model instances.
// Calls to one instance are serialized; different instances run concurrently.
type SequenceServer struct {
	api.UnimplementedSequenceBackendServer

	instances []*instance
}

type instance struct {
	mu      sync.Mutex
	backend engine.Backend
}

var _ api.SequenceBackendServer = &SequenceServer{}

// New wraps already constructed backends.
func New(backends ...engine.Backend) *SequenceServer {
	s := &SequenceServer{}
	for _, backend := range backends {
		s.instances = append(s.instances, &instance{backend: backend})
	}
	return s
}

// NewForModel creates instanceCount sequence backend instances for the model.
func NewForModel(ctx context.Context, config *modelconfig.ModelConfig, instanceCount int, gpuDevice int) (*SequenceServer, error) {
	if instanceCount < 1 {
		return nil, fmt.Errorf("instance count must be at least 1, got %d", instanceCount)
	}

	var backends []engine.Backend
	for i := 0; i < instanceCount; i++ {
		name := fmt.Sprintf("%s_%d", config.Name, i)
		backend, err := sequence.New(ctx, name, config, gpuDevice)
		if err != nil {
			for _, b := range backends {
				b.Close()
			}
			return nil, fmt.Errorf("creating instance %q: %w", name, err)
		}
		backends = append(backends, backend)
	}
	return New(backends...), nil
}

func (s *SequenceServer) InstanceCount() int {
	return len(s.instances)
}

func (s *SequenceServer) Execute(ctx context.Context, req *api.ExecuteRequest) (*api.ExecuteResponse, error) {
	log := klog.FromContext(ctx)

	id := int(req.GetInstance())
	if id < 0 || id >= len(s.instances) {
		return nil, status.Errorf(codes.InvalidArgument, "instance %d not found", id)
	}
	inst := s.instances[id]

	inst.mu.Lock()
	defer inst.mu.Unlock()

	response, err := engine.Evaluate(ctx, inst.backend, req)
	if err != nil {
		log.Error(err, "batch rejected", "instance", id, "payloads", len(req.GetPayloads()))
		if _, isStatus := status.FromError(err); !isStatus && engine.KindOf(err) == engine.KindUnknown {
			return nil, status.Errorf(codes.Internal, "executing batch: %v", err)
		}
		return nil, err
	}
	return response, nil
}

// Close closes every instance.
func (s *SequenceServer) Close() error {
	var errs []error
	for _, inst := range s.instances {
		inst.mu.Lock()
		if err := inst.backend.Close(); err != nil {
			errs = append(errs, err)
		}
		inst.mu.Unlock()
	}
	return errors.Join(errs...)
}
