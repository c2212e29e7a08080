package authz

import (
	"context"
	"fmt"
	"strings"

	fga "github.com/openfga/go-sdk/client"

	"github.com/malware-d/bercos/internal/bank"
)

// OpenFGA is an alternative relationship-based backend. It cannot see
// transient attributes (amounts), so deployments using it lean on the
// engine's local precondition checks for quantity rules; the tuple model
// covers who may act on which account.
type OpenFGA struct {
	c       *fga.OpenFgaClient
	modelID string
}

type OpenFGAConfig struct {
	APIURL  string
	StoreID string
	ModelID string // optional but recommended in prod
}

func NewOpenFGA(cfg OpenFGAConfig) (*OpenFGA, error) {
	conf := &fga.ClientConfiguration{
		ApiUrl:  cfg.APIURL,
		StoreId: cfg.StoreID,
	}
	if cfg.ModelID != "" {
		conf.AuthorizationModelId = cfg.ModelID
	}
	client, err := fga.NewSdkClient(conf)
	if err != nil {
		return nil, fmt.Errorf("openfga_client_init: %w", err)
	}
	return &OpenFGA{c: client, modelID: cfg.ModelID}, nil
}

func (o *OpenFGA) Check(ctx context.Context, req Request) (Decision, error) {
	checkReq := fga.ClientCheckRequest{
		User:     "user:" + req.Principal.CustomerID,
		Relation: relationFor(req.Action),
		Object:   req.ResourceKind + ":" + req.ResourceID,
	}

	resp, err := o.c.Check(ctx).Body(checkReq).Execute()
	if err != nil {
		return Decision{}, bank.Wrap(bank.KindPDPUnavailable, "policy decision point unreachable", err)
	}
	if resp.Allowed != nil && *resp.Allowed {
		return Decision{Allowed: true}, nil
	}
	return Decision{Allowed: false, Reason: "policy_denied"}, nil
}

// relationFor flattens namespaced action names ("transfer:internal") into
// relation identifiers the tuple model can declare.
func relationFor(action string) string {
	return strings.ReplaceAll(action, ":", "_")
}
