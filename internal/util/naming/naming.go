package naming

import (
	"fmt"
	"time"
)

// StorageAccountMaxLength is the Azure limit on storage account names.
const StorageAccountMaxLength = 24

// TimestampLayout formats the run-scoped uniqueness token.
const TimestampLayout = "20060102150405"

// StateContainer is the blob container holding Terraform state.
const StateContainer = "state"

func ServicePrincipal(project string) string {
	return fmt.Sprintf("%s-sp", project)
}

func StateResourceGroup(project string) string {
	return fmt.Sprintf("%s-tf-state-rg", project)
}

func StorageAccount(project, timestamp string) string {
	name := fmt.Sprintf("%sstorage%s", project, timestamp)
	if len(name) > StorageAccountMaxLength {
		name = name[:StorageAccountMaxLength]
	}
	return name
}

// Timestamp renders t as the uniqueness token used in storage account names.
func Timestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

// ResourceNames are the names of everything the bootstrap creates.
type ResourceNames struct {
	ServicePrincipal string
	ResourceGroup    string
	StorageAccount   string
	Container        string
}

// ForProject derives all resource names for a run.
func ForProject(project, timestamp string) ResourceNames {
	return ResourceNames{
		ServicePrincipal: ServicePrincipal(project),
		ResourceGroup:    StateResourceGroup(project),
		StorageAccount:   StorageAccount(project, timestamp),
		Container:        StateContainer,
	}
}
