package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the household module: creation volume,
// onboarding throughput, and the duration of the multi-row creation path.
type Metrics struct {
	HouseholdsCreated       prometheus.Counter
	TenantsCreated          prometheus.Counter
	OnboardingEmailsSent    prometheus.Counter
	AgreementsCreated       prometheus.Counter
	CreateHouseholdDuration prometheus.Histogram
}

// New creates a Metrics instance with all household module metrics registered.
func New() *Metrics {
	return &Metrics{
		HouseholdsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "leasehold_households_created_total",
			Help: "Total number of households (tenant groups) created",
		}),
		TenantsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "leasehold_tenants_created_total",
			Help: "Total number of tenant records created",
		}),
		OnboardingEmailsSent: promauto.NewCounter(prometheus.CounterOpts{
			Name: "leasehold_onboarding_emails_sent_total",
			Help: "Total number of onboarding emails sent",
		}),
		AgreementsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "leasehold_agreements_created_total",
			Help: "Total number of tenancy agreements created",
		}),
		CreateHouseholdDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "leasehold_create_household_duration_seconds",
			Help:    "Duration of household creation (validation plus transactional write)",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}),
	}
}

// IncrementHouseholdCreated records one household with the given member count.
func (m *Metrics) IncrementHouseholdCreated(members int) {
	m.HouseholdsCreated.Inc()
	m.TenantsCreated.Add(float64(members))
}

// AddOnboardingEmailsSent records a batch of onboarding sends.
func (m *Metrics) AddOnboardingEmailsSent(n int) {
	m.OnboardingEmailsSent.Add(float64(n))
}

// IncrementAgreementCreated records a successful agreement creation.
func (m *Metrics) IncrementAgreementCreated() {
	m.AgreementsCreated.Inc()
}

// ObserveCreateHousehold records the duration of a CreateTenants call.
// Call with time.Now() at the start of the operation.
func (m *Metrics) ObserveCreateHousehold(start time.Time) {
	m.CreateHouseholdDuration.Observe(time.Since(start).Seconds())
}
