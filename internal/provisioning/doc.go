// Package provisioning creates the Azure resources behind the project's
// Terraform state backend.
//
// # Phases
//
// The pipeline runs five phases in strict order, each depending on the
// previous one's result:
//
//   - service-principal: Contributor principal on the subscription; its
//     SDK-auth JSON becomes the CI credential
//   - subscription: re-asserts the active subscription before mutating calls
//   - resource-group: {project}-tf-state-rg in the chosen region
//   - storage-account: Standard_LRS account inside that group
//   - container: the "state" blob container inside that account
//
// # Core Types
//
// Context carries the validated parameters, derived names, subscription
// context, Azure CLI, observer and metrics. Phase defines a step with Name()
// and Provision() methods. State accumulates what each phase created.
//
// RunPhases stops at the first failure. Nothing is rolled back; resources
// created before the failure stay in place and are listed by State.Created.
package provisioning
