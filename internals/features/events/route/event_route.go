package route

import (
	"gorm.io/gorm"

	"msns_backend/internals/constants"
	"msns_backend/internals/features/events/service"
	"msns_backend/internals/rpc"
)

func RegisterProcedures(r *rpc.Router, db *gorm.DB) {
	svc := service.New(db)

	read := rpc.Roles(constants.StaffRoles...)
	write := rpc.Roles(constants.ManagementRoles...)
	anyone := rpc.Roles(constants.AllRoles...)

	rpc.Query(r, "event.getEvents", svc.List, read)
	rpc.Query(r, "event.getEventById", svc.GetByID, read)
	rpc.Query(r, "event.getTags", svc.Tags, read)
	rpc.Query(r, "event.getEventTypes", svc.EventTypes, read)
	rpc.Query(r, "event.getPriorityLevels", svc.PriorityLevels, read)

	rpc.Mutation(r, "event.createEvent", svc.Create, write)
	rpc.Mutation(r, "event.updateEvent", svc.Update, write)
	rpc.Mutation(r, "event.deleteEvent", svc.Delete, write)
	rpc.Mutation(r, "event.addAttendee", svc.AddAttendee, anyone)
	rpc.Mutation(r, "event.updateAttendeeStatus", svc.UpdateAttendeeStatus, anyone)
	rpc.Mutation(r, "event.createTag", svc.CreateTag, write)
	rpc.Mutation(r, "event.updateTag", svc.UpdateTag, write)
	rpc.Mutation(r, "event.deleteTag", svc.DeleteTag, write)
}
