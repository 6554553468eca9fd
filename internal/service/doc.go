// Package service contains the application's orchestration logic, sitting
// between the HTTP handlers and the persistence layer.
package service
