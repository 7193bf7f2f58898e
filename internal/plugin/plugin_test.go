package plugin

import (
	"context"
	"fmt"
	"net/http"

	"github.com/google/uuid"

	"github.com/FAIR-DM/fairdm-sub001/internal/entity"
)

// Shared fixtures for the plugin package tests.

type nopHandler struct{}

func (nopHandler) ServeEntity(w http.ResponseWriter, r *http.Request, vc *ViewContext) {
	fmt.Fprint(w, "ok")
}

func newTestTypes() (sample, rock, dataset *entity.Type) {
	sample = entity.NewType("fairdm", "sample", nil)
	rock = entity.NewType("fairdm", "rock-sample", sample)
	dataset = entity.NewType("fairdm", "dataset", nil)
	return sample, rock, dataset
}

func newInstance(t *entity.Type, label string) *entity.Record {
	return &entity.Record{RecordID: uuid.New(), Name: label, Type: t}
}

type stubLoader struct {
	instances map[uuid.UUID]entity.Instance
}

func newStubLoader(instances ...entity.Instance) *stubLoader {
	l := &stubLoader{instances: make(map[uuid.UUID]entity.Instance)}
	for _, inst := range instances {
		l.instances[inst.ID()] = inst
	}
	return l
}

func (l *stubLoader) Fetch(_ context.Context, t *entity.Type, id uuid.UUID) (entity.Instance, error) {
	inst, ok := l.instances[id]
	if !ok || !inst.EntityType().IsSubtypeOf(t) {
		return nil, entity.ErrNotFound
	}
	return inst, nil
}

func descriptorNamed(name string) *Descriptor {
	return &Descriptor{Name: name, Handler: nopHandler{}}
}
