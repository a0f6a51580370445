package postgres

import (
	"github.com/yamboly/tutor-dashboard-service/internal/repositories"
	"gorm.io/gorm"
)

type postgresRepository struct {
	attempt      repositories.AttemptRepository
	exercise     repositories.ExerciseRepository
	chat         repositories.ChatRepository
	subject      repositories.SubjectRepository
	subscription repositories.SubscriptionRepository
	user         repositories.UserRepository
}

func NewRepository(db *gorm.DB) repositories.Repository {
	return &postgresRepository{
		attempt:      NewAttemptPostgreSQL(db),
		exercise:     NewExercisePostgreSQL(db),
		chat:         NewChatPostgreSQL(db),
		subject:      NewSubjectPostgreSQL(db),
		subscription: NewSubscriptionPostgreSQL(db),
		user:         NewUserPostgreSQL(db),
	}
}

func (r *postgresRepository) Attempt() repositories.AttemptRepository { return r.attempt }

func (r *postgresRepository) Exercise() repositories.ExerciseRepository { return r.exercise }

func (r *postgresRepository) Chat() repositories.ChatRepository { return r.chat }

func (r *postgresRepository) Subject() repositories.SubjectRepository { return r.subject }

func (r *postgresRepository) Subscription() repositories.SubscriptionRepository {
	return r.subscription
}

func (r *postgresRepository) User() repositories.UserRepository { return r.user }
