package mongo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"marketplace-admin-backend/internal/domain"
	"marketplace-admin-backend/internal/logger"
)

type userGateway struct {
	s *Store
}

func (g *userGateway) ListAll(ctx context.Context) ([]domain.User, error) {
	return g.list(ctx, "users.listAll", bson.M{})
}

func (g *userGateway) ListPending(ctx context.Context) ([]domain.User, error) {
	return g.list(ctx, "users.listPending", bson.M{"status": string(domain.UserStatusPending)})
}

func (g *userGateway) list(ctx context.Context, op string, filter bson.M) (users []domain.User, err error) {
	logger.GatewayCall(backendName, op)
	defer func() { logger.GatewayResult(backendName, op, err, "count", len(users)) }()

	opts := options.Find().SetProjection(bson.M{"password": 0}).SetSort(bson.D{{Key: "createdAt", Value: -1}})
	docs, err := findAll[userDoc](ctx, g.s.coll(g.s.names.Users), filter, opts)
	if err != nil {
		return nil, wrap(op, err)
	}
	users = make([]domain.User, 0, len(docs))
	for _, d := range docs {
		users = append(users, d.toDomain())
	}
	return users, nil
}

func (g *userGateway) Approve(ctx context.Context, id string) error {
	return g.s.updateOne(ctx, "users.approve", g.s.names.Users, "User", id, bson.M{"status": string(domain.UserStatusActive)})
}

func (g *userGateway) Suspend(ctx context.Context, id string) error {
	return g.s.updateOne(ctx, "users.suspend", g.s.names.Users, "User", id, bson.M{"status": string(domain.UserStatusSuspended)})
}

func (g *userGateway) Activate(ctx context.Context, id string) error {
	return g.s.updateOne(ctx, "users.activate", g.s.names.Users, "User", id, bson.M{"status": string(domain.UserStatusActive)})
}

func (g *userGateway) Delete(ctx context.Context, id string) error {
	return g.s.deleteOne(ctx, "users.delete", g.s.names.Users, "User", id)
}

type jobGateway struct {
	s *Store
}

func (g *jobGateway) ListApproved(ctx context.Context) ([]domain.Job, error) {
	return g.list(ctx, "jobs.listApproved", g.s.names.Jobs, domain.CollectionApproved)
}

func (g *jobGateway) ListPending(ctx context.Context) ([]domain.Job, error) {
	return g.list(ctx, "jobs.listPending", g.s.names.PendingJobs, domain.CollectionPending)
}

func (g *jobGateway) list(ctx context.Context, op, collection, tag string) (jobs []domain.Job, err error) {
	logger.GatewayCall(backendName, op, "collection", collection)
	defer func() { logger.GatewayResult(backendName, op, err, "count", len(jobs)) }()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	docs, err := findAll[jobDoc](ctx, g.s.coll(collection), bson.M{}, opts)
	if err != nil {
		return nil, wrap(op, err)
	}
	jobs = make([]domain.Job, 0, len(docs))
	var unnamed []string
	for _, d := range docs {
		j := d.toDomain(tag)
		if j.PostedBy.Name == "" && j.PostedBy.ID != "" {
			unnamed = append(unnamed, j.PostedBy.ID)
		}
		jobs = append(jobs, j)
	}

	if len(unnamed) > 0 {
		names, lookupErr := g.s.lookupField(ctx, g.s.names.Users, "name", unnamed)
		if lookupErr != nil {
			logger.Warn("Could not resolve job poster names", "error", lookupErr)
			return jobs, nil
		}
		for i := range jobs {
			if jobs[i].PostedBy.Name == "" {
				jobs[i].PostedBy.Name = names[jobs[i].PostedBy.ID]
			}
		}
	}
	return jobs, nil
}

// physical maps a logical collection tag, or a physical name, to a collection.
func (g *jobGateway) physical(op, collection string) (string, error) {
	switch collection {
	case domain.CollectionApproved, g.s.names.Jobs:
		return g.s.names.Jobs, nil
	case domain.CollectionPending, g.s.names.PendingJobs:
		return g.s.names.PendingJobs, nil
	}
	return "", &domain.GatewayError{Op: op, Status: 400, Message: "Invalid job collection"}
}

// Approve moves a pending job into the approved collection. A job that
// already sits in the approved collection is flagged in place. The approved
// copy is upserted before the pending original is removed, so a move that
// failed halfway completes when approved again.
func (g *jobGateway) Approve(ctx context.Context, id, collection string) (err error) {
	const op = "jobs.approve"
	source, err := g.physical(op, collection)
	if err != nil {
		return err
	}
	if source == g.s.names.Jobs {
		return g.s.updateOne(ctx, op, source, "Job", id, bson.M{"isApproved": true})
	}

	logger.GatewayCall(backendName, op, "from", source, "to", g.s.names.Jobs, "id", id)
	defer func() { logger.GatewayResult(backendName, op, err, "id", id) }()

	var doc bson.M
	if err := g.s.coll(source).FindOne(ctx, idFilter(id)).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return notFound(op, "Job")
		}
		return wrap(op, err)
	}

	doc["isApproved"] = true
	doc["updatedAt"] = g.s.now().UTC()
	if status, _ := doc["status"].(string); status == "" {
		doc["status"] = string(domain.JobStatusActive)
	}
	upsert := options.Replace().SetUpsert(true)
	if _, err := g.s.coll(g.s.names.Jobs).ReplaceOne(ctx, bson.M{"_id": doc["_id"]}, doc, upsert); err != nil {
		return wrap(op, err)
	}
	if _, err := g.s.coll(source).DeleteOne(ctx, bson.M{"_id": doc["_id"]}); err != nil {
		logger.Error("Approved job copied but pending original not removed", "id", id, "error", err)
		return wrap(op, err)
	}
	return nil
}

// SetStatus updates the approved copy of a job, falling back to the pending one.
func (g *jobGateway) SetStatus(ctx context.Context, id string, status domain.JobStatus) error {
	const op = "jobs.setStatus"
	set := bson.M{"status": string(status)}
	err := g.s.updateOne(ctx, op, g.s.names.Jobs, "Job", id, set)
	if errors.Is(err, domain.ErrNotFound) {
		return g.s.updateOne(ctx, op, g.s.names.PendingJobs, "Job", id, bson.M{"status": string(status)})
	}
	return err
}

func (g *jobGateway) Delete(ctx context.Context, id, collection string) error {
	const op = "jobs.delete"
	target, err := g.physical(op, collection)
	if err != nil {
		return err
	}
	return g.s.deleteOne(ctx, op, target, "Job", id)
}

type bookingGateway struct {
	s *Store
}

func (g *bookingGateway) ListAll(ctx context.Context) (bookings []domain.Booking, err error) {
	const op = "bookings.listAll"
	logger.GatewayCall(backendName, op)
	defer func() { logger.GatewayResult(backendName, op, err, "count", len(bookings)) }()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	docs, err := findAll[bookingDoc](ctx, g.s.coll(g.s.names.Bookings), bson.M{}, opts)
	if err != nil {
		return nil, wrap(op, err)
	}
	bookings = make([]domain.Booking, 0, len(docs))
	for _, d := range docs {
		bookings = append(bookings, d.toDomain())
	}
	g.resolveNames(ctx, bookings)
	return bookings, nil
}

// resolveNames fills party names and job titles the documents did not carry.
// Lookup failures only leave the names empty.
func (g *bookingGateway) resolveNames(ctx context.Context, bookings []domain.Booking) {
	var people, jobs []string
	for _, b := range bookings {
		if b.Worker.Name == "" && b.Worker.ID != "" {
			people = append(people, b.Worker.ID)
		}
		if b.Employer.Name == "" && b.Employer.ID != "" {
			people = append(people, b.Employer.ID)
		}
		if b.Job.Title == "" && b.Job.ID != "" {
			jobs = append(jobs, b.Job.ID)
		}
	}

	if len(people) > 0 {
		names, err := g.s.lookupField(ctx, g.s.names.Users, "name", people)
		if err != nil {
			logger.Warn("Could not resolve booking party names", "error", err)
		} else {
			for i := range bookings {
				if bookings[i].Worker.Name == "" {
					bookings[i].Worker.Name = names[bookings[i].Worker.ID]
				}
				if bookings[i].Employer.Name == "" {
					bookings[i].Employer.Name = names[bookings[i].Employer.ID]
				}
			}
		}
	}
	if len(jobs) > 0 {
		titles, err := g.s.lookupField(ctx, g.s.names.Jobs, "title", jobs)
		if err != nil {
			logger.Warn("Could not resolve booking job titles", "error", err)
			return
		}
		for i := range bookings {
			if bookings[i].Job.Title == "" {
				bookings[i].Job.Title = titles[bookings[i].Job.ID]
			}
		}
	}
}

func (g *bookingGateway) Approve(ctx context.Context, id, notes string) error {
	return g.s.updateOne(ctx, "bookings.approve", g.s.names.Bookings, "Booking", id, bson.M{
		"bookingStatus": string(domain.BookingStatusApproved),
		"adminApproval": true,
		"adminNotes":    notes,
	})
}

func (g *bookingGateway) Reject(ctx context.Context, id, reason string) error {
	return g.s.updateOne(ctx, "bookings.reject", g.s.names.Bookings, "Booking", id, bson.M{
		"bookingStatus":   string(domain.BookingStatusRejected),
		"rejectionReason": reason,
	})
}

func (g *bookingGateway) SetPaymentStatus(ctx context.Context, id string, status domain.PaymentStatus) error {
	return g.s.updateOne(ctx, "bookings.setPaymentStatus", g.s.names.Bookings, "Booking", id, bson.M{
		"paymentStatus": string(status),
	})
}

func (g *bookingGateway) Delete(ctx context.Context, id string) error {
	return g.s.deleteOne(ctx, "bookings.delete", g.s.names.Bookings, "Booking", id)
}
