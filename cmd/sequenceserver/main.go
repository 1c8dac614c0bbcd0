package main

import (
	"context"
	"flag"
	"fmt"
	"net"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	api "k8s.io/examples/AI/sequencecloud/pkg/api/v1alpha1"
	"k8s.io/examples/AI/sequencecloud/pkg/blobs"
	"k8s.io/examples/AI/sequencecloud/pkg/engine"
	"k8s.io/examples/AI/sequencecloud/pkg/server"

	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"
	"k8s.io/klog/v2"
)

func main() {
	ctx := context.Background()
	err := run(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	listen := os.Getenv("LISTEN")
	if listen == "" {
		listen = ":9876"
	}
	modelConfig := os.Getenv("MODEL_CONFIG")
	instances := 1
	if s := os.Getenv("INSTANCES"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil {
			return fmt.Errorf("parsing INSTANCES %q: %w", s, err)
		}
		instances = v
	}
	gpuDevice := engine.NoGPUDevice

	flag.StringVar(&listen, "listen", listen, "listen address")
	flag.StringVar(&modelConfig, "model-config", modelConfig, "model configuration location: gs://<bucket>/<key>, http(s) URL, or local path")
	flag.IntVar(&instances, "instances", instances, "number of model instances to serve")
	flag.IntVar(&gpuDevice, "gpu-device", gpuDevice, "GPU device to run on; -1 runs on the CPU")

	klog.InitFlags(nil)
	flag.Parse()

	log := klog.FromContext(ctx)

	if modelConfig == "" {
		return fmt.Errorf("must specify -model-config or MODEL_CONFIG")
	}

	reader, info, err := blobs.ParseLocation(modelConfig)
	if err != nil {
		return err
	}
	loader := &ConfigLoader{
		reader:            reader,
		maxReadAttempts:   5,
		retryDelaySeconds: 5,
	}
	config, err := loader.Load(ctx, info)
	if err != nil {
		return fmt.Errorf("loading model config from %q: %w", modelConfig, err)
	}

	sequenceServer, err := server.NewForModel(ctx, config, instances, gpuDevice)
	if err != nil {
		return err
	}
	defer sequenceServer.Close()

	lis, err := net.Listen("tcp", listen)
	if err != nil {
		return fmt.Errorf("listening on %q: %w", listen, err)
	}

	grpcServer := grpc.NewServer()
	api.RegisterSequenceBackendServer(grpcServer, sequenceServer)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("Starting sequenceserver", "listen", listen, "model", config.Name, "instances", sequenceServer.InstanceCount())
		if err := grpcServer.Serve(lis); err != nil {
			return fmt.Errorf("serving GRPC: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		log.Info("shutting down sequenceserver")
		grpcServer.GracefulStop()
		return nil
	})

	return g.Wait()
}
