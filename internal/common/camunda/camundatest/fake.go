// Package camundatest provides an in-process job client for handler tests.
package camundatest

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/camunda/zeebe/clients/go/v8/pkg/commands"
	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/pb"
	"google.golang.org/grpc"
)

// Gateway records the job commands sent through it. Like the real gateway it
// rejects commands whose context is already done. Calls outside
// CompleteJob, FailJob and ThrowError panic on the nil embedded client.
type Gateway struct {
	pb.GatewayClient

	mu        sync.Mutex
	Completed []*pb.CompleteJobRequest
	Failed    []*pb.FailJobRequest
	Thrown    []*pb.ThrowErrorRequest
}

func (g *Gateway) CompleteJob(ctx context.Context, in *pb.CompleteJobRequest, _ ...grpc.CallOption) (*pb.CompleteJobResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	g.Completed = append(g.Completed, in)
	return &pb.CompleteJobResponse{}, nil
}

func (g *Gateway) FailJob(ctx context.Context, in *pb.FailJobRequest, _ ...grpc.CallOption) (*pb.FailJobResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	g.Failed = append(g.Failed, in)
	return &pb.FailJobResponse{}, nil
}

func (g *Gateway) ThrowError(ctx context.Context, in *pb.ThrowErrorRequest, _ ...grpc.CallOption) (*pb.ThrowErrorResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	g.Thrown = append(g.Thrown, in)
	return &pb.ThrowErrorResponse{}, nil
}

func noRetry(context.Context, error) bool { return false }

// JobClient satisfies worker.JobClient on top of a Gateway.
type JobClient struct {
	Gateway *Gateway
}

func NewJobClient() *JobClient {
	return &JobClient{Gateway: &Gateway{}}
}

func (c *JobClient) NewCompleteJobCommand() commands.CompleteJobCommandStep1 {
	return commands.NewCompleteJobCommand(c.Gateway, noRetry)
}

func (c *JobClient) NewFailJobCommand() commands.FailJobCommandStep1 {
	return commands.NewFailJobCommand(c.Gateway, noRetry)
}

func (c *JobClient) NewThrowErrorCommand() commands.ThrowErrorCommandStep1 {
	return commands.NewThrowErrorCommand(c.Gateway, noRetry)
}

// CompletedVariables decodes the variables of the i-th completed job.
func (c *JobClient) CompletedVariables(i int, out interface{}) error {
	c.Gateway.mu.Lock()
	defer c.Gateway.mu.Unlock()
	return json.Unmarshal([]byte(c.Gateway.Completed[i].Variables), out)
}

// NewJob builds an activated job of taskType carrying variables as JSON.
func NewJob(key int64, taskType string, variables interface{}) entities.Job {
	variablesJSON, _ := json.Marshal(variables)

	return entities.Job{ActivatedJob: &pb.ActivatedJob{
		Key:                key,
		Type:               taskType,
		ProcessInstanceKey: key * 10,
		BpmnProcessId:      "agro-advisory-process",
		ElementId:          "Activity_" + taskType,
		CustomHeaders:      "{}",
		Worker:             "test-worker",
		Retries:            3,
		Variables:          string(variablesJSON),
	}}
}
