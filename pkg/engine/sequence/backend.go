package sequence

import (
	"context"
	"fmt"
	"math"
	"time"

	"k8s.io/examples/AI/sequencecloud/pkg/engine"
	"k8s.io/examples/AI/sequencecloud/pkg/modelconfig"
	"k8s.io/klog/v2"
)

// Context is one instance of the sequence backend. It keeps an INT32 accumulator per batch slot,
// updated from the START and READY control inputs:
//
//	READY=0, START=x: ignore the input, leave the accumulator unchanged, produce no output.
//	READY=1, START=1: set the accumulator to the sum of the input.
//	READY=1, START=0: add the sum of the input to the accumulator.
//
// When READY=1 the accumulator is returned in OUTPUT.
type Context struct {
	name   string
	config *modelconfig.ModelConfig

	executeDelay time.Duration

	slots *SlotStore
}

var _ engine.Backend = &Context{}

// New validates the model configuration and creates an instance.
// gpuDevice must be engine.NoGPUDevice.
func New(ctx context.Context, name string, config *modelconfig.ModelConfig, gpuDevice int) (*Context, error) {
	log := klog.FromContext(ctx)

	if err := validateConfig(config, gpuDevice); err != nil {
		return nil, err
	}
	if config.MaxBatchSize < 0 || config.MaxBatchSize > modelconfig.MaxBatchSizeLimit {
		return nil, engine.NewError(engine.KindParameter, "",
			fmt.Errorf("max_batch_size must be between 0 and %d, got %d", modelconfig.MaxBatchSizeLimit, config.MaxBatchSize))
	}

	delayMs, err := config.IntParameter(DelayMsName, 0)
	if err != nil {
		return nil, engine.NewError(engine.KindParameter, "", err)
	}
	if delayMs < 0 {
		return nil, engine.NewError(engine.KindParameter, "", fmt.Errorf("parameter %q must not be negative, got %d", DelayMsName, delayMs))
	}

	c := &Context{
		name:         name,
		config:       config,
		executeDelay: time.Duration(delayMs) * time.Millisecond,
		slots:        NewSlotStore(config.MaxBatchSize),
	}

	log.Info("created sequence backend instance", "instance", name, "model", config.Name, "slots", c.slots.Len(), "executeDelay", c.executeDelay)

	return c, nil
}

func (c *Context) Name() string {
	return c.name
}

// Slots exposes the accumulators; they must not be touched while Execute is running.
func (c *Context) Slots() *SlotStore {
	return c.slots
}

func (c *Context) Close() error {
	c.slots = nil
	return nil
}

// Execute runs one timestep for each payload; payload i is the next timestep of the sequence in slot i.
func (c *Context) Execute(ctx context.Context, payloads []*engine.Payload) error {
	log := klog.FromContext(ctx).WithValues("instance", c.name)

	log.V(2).Info("sequence executing payloads", "payloads", len(payloads))

	if c.slots == nil {
		return fmt.Errorf("instance %q is closed", c.name)
	}
	if len(payloads) > c.slots.Len() {
		return engine.NewError(engine.KindBatchTooBig, "",
			fmt.Errorf("got %d payloads, max-batch-size allows %d", len(payloads), c.slots.Len()))
	}

	if c.executeDelay > 0 {
		time.Sleep(c.executeDelay)
	}

	for slot, payload := range payloads {
		if err := c.executeStep(log, slot, payload); err != nil {
			log.V(2).Info("payload failed", "slot", slot, "err", err)
			payload.Err = err
		}
	}

	return nil
}

func (c *Context) executeStep(log klog.Logger, slot int, payload *engine.Payload) error {
	if payload.BatchSize != 1 {
		return engine.NewError(engine.KindTimesteps, "", fmt.Errorf("payload has batch size %d", payload.BatchSize))
	}

	var elementCount int64
	if shape, ok := payload.InputShape(InputName); ok && len(shape) > 0 {
		elementCount = shape[0]
	}
	if elementCount < 0 || elementCount > math.MaxInt/engine.Int32ByteSize {
		return engine.NewError(engine.KindInputSize, InputName, fmt.Errorf("invalid element count %d", elementCount))
	}

	startBuffer, err := assembleTensor(log, payload.Input, StartInput, engine.Int32ByteSize)
	if err != nil {
		return err
	}
	readyBuffer, err := assembleTensor(log, payload.Input, ReadyInput, engine.Int32ByteSize)
	if err != nil {
		return err
	}
	inputBuffer, err := assembleTensor(log, payload.Input, InputName, int(elementCount)*engine.Int32ByteSize)
	if err != nil {
		return err
	}

	start := engine.DecodeInt32s(startBuffer)[0]
	ready := engine.DecodeInt32s(readyBuffer)[0]

	if ready == 0 {
		return nil
	}

	var sum int32
	for _, v := range engine.DecodeInt32s(inputBuffer) {
		sum += v
	}

	var output int32
	if start == 0 {
		output = c.slots.Add(slot, sum)
	} else {
		c.slots.Set(slot, sum)
		output = sum
	}

	// An error recorded by the caller before execution suppresses the output.
	if payload.Err != nil || len(payload.RequiredOutputs) == 0 {
		return nil
	}

	shape := outputShape(c.config.SupportsBatching(), elementCount)
	return writeOutput(payload.Output, payload.RequiredOutputs[0], shape, output)
}
