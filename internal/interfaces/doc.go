// Package interfaces documents the core abstractions used throughout the application.
//
// # Interface Categories
//
// ## Persistence
//
//   - TxRunner: one transaction per mutating operation (internal/services/tx.go)
//   - AuditRecorder: post-commit audit hook (internal/services/recorder.go)
//   - filters.Predicate: one student filter condition (internal/filters/predicates.go)
//
// ## Transport
//
//   - StudentStore, GradeStore, AuditStore: what the controllers call (internal/http/stores.go)
//   - StatusDeleter, StudentFinder: what the commands call (internal/cli)
//
// ## Maintenance
//
//   - AuditEventCleaner: deletes expired audit events (internal/tasks/cleanup_audit.go)
//   - CleanupEnqueuer: queue or inline runner used by the cron job (internal/scheduler)
//
// # Adding a New Student Filter
//
//  1. Add a predicate in internal/filters/predicates.go
//
//     type FirstNameEquals string
//
//     func (p FirstNameEquals) Apply(db *gorm.DB) *gorm.DB {
//     return db.Where(clause.Eq{Column: clause.Column{Table: "students", Name: "first_name"}, Value: string(p)})
//     }
//
//  2. Add an optional field to filters.StudentFilter with json and form tags
//
//  3. Translate it in filters.FromStudentFilter and cover it in builder_test.go
//
// # Adding a New Maintenance Task
//
//  1. Define the task type with a Config() returning backlite.QueueConfig
//  2. Write a processor and a NewXQueue constructor in internal/tasks
//  3. Register the queue in entrypoint.Run and schedule it in internal/scheduler
//
// # Compile-Time Checks
//
// See checks.go for compile-time interface implementation checks.
package interfaces
