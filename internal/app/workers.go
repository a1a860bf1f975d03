package app

import (
	"admissions-workers/internal/common/camunda"
	"admissions-workers/internal/common/config"
	"admissions-workers/internal/common/logger"
	"admissions-workers/internal/workers/admissions/jobs"

	bae "admissions-workers/internal/workers/admissions/begin-application-edit"
	cae "admissions-workers/internal/workers/admissions/cancel-application-edit"
	da "admissions-workers/internal/workers/admissions/delete-application"
	ea "admissions-workers/internal/workers/admissions/export-applications"
	la "admissions-workers/internal/workers/admissions/list-applications"
	sae "admissions-workers/internal/workers/admissions/save-application-edit"
	sc "admissions-workers/internal/workers/admissions/search-courses"
	sac "admissions-workers/internal/workers/admissions/send-application-confirmation"
	sa "admissions-workers/internal/workers/admissions/submit-application"
	scm "admissions-workers/internal/workers/admissions/submit-contact-message"
	vad "admissions-workers/internal/workers/admissions/validate-application-data"
)

// TaskTypes lists every task type RegisterWorkers serves.
func TaskTypes() []string {
	return []string{
		vad.TaskType, sa.TaskType, sac.TaskType,
		la.TaskType, bae.TaskType, sae.TaskType, cae.TaskType, da.TaskType, ea.TaskType,
		scm.TaskType, sc.TaskType,
	}
}

// RegisterWorkers opens a job worker for every admissions task type on the
// resources' service. opts apply to every worker's job runner.
func RegisterWorkers(workers *camunda.Registry, res *Resources, log logger.Logger, opts ...jobs.Option) {
	cfg := res.Config
	svc := res.Service
	wc := func(taskType string) config.WorkerConfig { return config.GetWorkerConfig(cfg, taskType) }

	// Intake
	workers.Start(vad.TaskType, wc(vad.TaskType),
		vad.NewHandler(vad.LoadConfig(wc(vad.TaskType)), svc.Intake, log, opts...))
	workers.Start(sa.TaskType, wc(sa.TaskType),
		sa.NewHandler(sa.LoadConfig(wc(sa.TaskType)), svc.Intake, log, opts...))

	// Registry
	workers.Start(la.TaskType, wc(la.TaskType),
		la.NewHandler(la.LoadConfig(wc(la.TaskType)), svc.Registry, log, opts...))
	workers.Start(bae.TaskType, wc(bae.TaskType),
		bae.NewHandler(bae.LoadConfig(wc(bae.TaskType)), svc.Registry, log, opts...))
	workers.Start(sae.TaskType, wc(sae.TaskType),
		sae.NewHandler(sae.LoadConfig(wc(sae.TaskType)), svc.Registry, log, opts...))
	workers.Start(cae.TaskType, wc(cae.TaskType),
		cae.NewHandler(cae.LoadConfig(wc(cae.TaskType)), svc.Registry, log, opts...))
	workers.Start(da.TaskType, wc(da.TaskType),
		da.NewHandler(da.LoadConfig(wc(da.TaskType)), svc.Registry, log, opts...))
	workers.Start(ea.TaskType, wc(ea.TaskType),
		ea.NewHandler(ea.LoadConfig(wc(ea.TaskType)), svc.Registry, log, opts...))

	// Contact and catalog
	workers.Start(scm.TaskType, wc(scm.TaskType),
		scm.NewHandler(scm.LoadConfig(wc(scm.TaskType)), svc.Contact, log, opts...))
	workers.Start(sc.TaskType, wc(sc.TaskType),
		sc.NewHandler(sc.LoadConfig(wc(sc.TaskType)), res.Searcher, res.Catalog, log, opts...))

	// Notifications
	var (
		email sac.EmailSender
		sms   sac.SMSSender
	)
	if res.Email != nil {
		email = res.Email
	}
	if res.SMS != nil {
		sms = res.SMS
	}
	workers.Start(sac.TaskType, wc(sac.TaskType),
		sac.NewHandler(sac.LoadConfig(cfg, wc(sac.TaskType)), svc.Registry, email, sms, log, opts...))
}
