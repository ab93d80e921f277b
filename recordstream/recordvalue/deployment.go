package recordvalue

import (
	"slices"

	"github.com/AntonStoeckl/recordstream-go/recordstream"
)

// Resource is one deployed file.
type Resource struct {
	Name    string
	Content []byte
}

// ProcessMetadata describes a process definition created by a deployment.
type ProcessMetadata struct {
	BpmnProcessID        string
	Version              int32
	ProcessDefinitionKey int64
	ResourceName         string
	Checksum             []byte
}

// Deployment is the payload of records about deployed resources.
type Deployment struct {
	Resources         []Resource
	ProcessesMetadata []ProcessMetadata
	TenantID          string
}

func (Deployment) ValueType() recordstream.ValueType {
	return recordstream.ValueTypeDeployment
}

func (v Deployment) DeepCopy() recordstream.RecordValue {
	c := v
	c.Resources = slices.Clone(v.Resources)
	c.ProcessesMetadata = slices.Clone(v.ProcessesMetadata)

	for i := range c.Resources {
		c.Resources[i].Content = slices.Clone(c.Resources[i].Content)
	}

	for i := range c.ProcessesMetadata {
		c.ProcessesMetadata[i].Checksum = slices.Clone(c.ProcessesMetadata[i].Checksum)
	}

	return c
}

// HasProcess reports whether the deployment created a process definition with the given id.
func (v Deployment) HasProcess(bpmnProcessID string) bool {
	return slices.ContainsFunc(v.ProcessesMetadata, func(m ProcessMetadata) bool {
		return m.BpmnProcessID == bpmnProcessID
	})
}
