// Package api exposes the HTTP surface: project and scene CRUD, code
// generation, render job submission and polling, audio upload, and static
// serving of rendered artifacts. Responses share one envelope shape; render
// submissions translate orchestrator precondition failures into 404 or 400.
package api
