// Package mocks provides centralized mock implementations for testing.
//
// Store mocks embed testify's mock.Mock so tests can set expectations per
// call. Service-level mocks use function fields with default return values,
// which keeps handler tests short:
//
//	svc := &mocks.MockTaskService{
//	    GetTaskFn: func(ctx context.Context, id uuid.UUID) (*domain.Task, []*domain.TaskHistory, error) {
//	        return nil, nil, store.ErrTaskNotFound
//	    },
//	}
package mocks
