package query

import (
	"context"

	"github.com/AntonStoeckl/recordstream-go/recordstream"
	"github.com/AntonStoeckl/recordstream-go/recordstream/recordvalue"
)

// ProcessInstanceRecords returns a view of the process instance records of source.
func ProcessInstanceRecords(ctx context.Context, source recordstream.Source) Stream[recordvalue.ProcessInstance] {
	return OfType[recordvalue.ProcessInstance](Records(ctx, source))
}

// JobRecords returns a view of the job records of source.
func JobRecords(ctx context.Context, source recordstream.Source) Stream[recordvalue.Job] {
	return OfType[recordvalue.Job](Records(ctx, source))
}

// VariableRecords returns a view of the variable records of source.
func VariableRecords(ctx context.Context, source recordstream.Source) Stream[recordvalue.Variable] {
	return OfType[recordvalue.Variable](Records(ctx, source))
}

// IncidentRecords returns a view of the incident records of source.
func IncidentRecords(ctx context.Context, source recordstream.Source) Stream[recordvalue.Incident] {
	return OfType[recordvalue.Incident](Records(ctx, source))
}

// TimerRecords returns a view of the timer records of source.
func TimerRecords(ctx context.Context, source recordstream.Source) Stream[recordvalue.Timer] {
	return OfType[recordvalue.Timer](Records(ctx, source))
}

// MessageSubscriptionRecords returns a view of the message subscription records of source.
func MessageSubscriptionRecords(
	ctx context.Context,
	source recordstream.Source,
) Stream[recordvalue.MessageSubscription] {

	return OfType[recordvalue.MessageSubscription](Records(ctx, source))
}

// DeploymentRecords returns a view of the deployment records of source.
func DeploymentRecords(ctx context.Context, source recordstream.Source) Stream[recordvalue.Deployment] {
	return OfType[recordvalue.Deployment](Records(ctx, source))
}
