package details

import (
	"gorm.io/gorm"

	alotmentRoutes "msns_backend/internals/features/academics/alotments/route"
	classRoutes "msns_backend/internals/features/academics/classes/route"
	sessionRoutes "msns_backend/internals/features/academics/sessions/route"
	subjectRoutes "msns_backend/internals/features/academics/subjects/route"
	"msns_backend/internals/rpc"
)

// AcademicProcedures registers session, class, subject and alotment.
func AcademicProcedures(r *rpc.Router, db *gorm.DB) {
	sessionRoutes.RegisterProcedures(r, db)
	classRoutes.RegisterProcedures(r, db)
	subjectRoutes.RegisterProcedures(r, db)
	alotmentRoutes.RegisterProcedures(r, db)
}
