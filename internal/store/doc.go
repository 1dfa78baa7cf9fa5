// Package store persists projects, scenes, and render jobs in SQLite.
//
// The Store owns the database connection and the status transitions for
// scenes and jobs. Job updates enforce two rules at the SQL level: progress
// never moves backward, and completed or failed jobs are immutable. Scene
// ordering within a project is dense; deleting a scene compacts the indices
// of those after it.
//
// The database lives in the configured log directory and is treated as the
// single source of truth for pipeline state; readers poll it rather than
// holding references to in-flight work.
package store
