// Package cost estimates the dollar cost of model requests from token
// usage. Providers publish their own pricing tables as [ModelCost] values;
// see the openai package for the table used by this project.
package cost
