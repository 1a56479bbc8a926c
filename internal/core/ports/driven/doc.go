// Package driven provides interfaces for infrastructure adapters
// (secondary/outbound ports): the completion service, image generation,
// blob storage, and the tech pack and revision stores.
package driven
