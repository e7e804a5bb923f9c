// Package services contains the application services that sit between the
// HTTP transport and the dataset/analytics layers. The DashboardService
// owns the load-then-aggregate flow: computing a snapshot is separate from
// rendering it, and the caller controls cache invalidation.
package services
